package toll

import (
	"time"

	"github.com/lintang-b-s/tollrate/pkg"
)

type BracketKind uint8

const (
	WEEKDAY BracketKind = iota
	WEEKEND
)

func (k BracketKind) String() string {
	if k == WEEKEND {
		return "weekend"
	}
	return "weekday"
}

// Bracket is the discount regime a span falls into. Weekday brackets carry the
// time-of-day range they cover; the weekend bracket covers whole days.
type Bracket struct {
	Kind     BracketKind
	From     TimeOfDay
	To       TimeOfDay
	Discount float64
}

var (
	weekdayBrackets = []Bracket{
		{Kind: WEEKDAY, From: StartOfDay, To: morningPeakStart, Discount: pkg.WEEKDAY_OFF_PEAK_DISCOUNT},
		{Kind: WEEKDAY, From: morningPeakStart, To: eveningStart, Discount: pkg.WEEKDAY_PEAK_DISCOUNT},
		{Kind: WEEKDAY, From: eveningStart, To: EndOfDay, Discount: pkg.WEEKDAY_OFF_PEAK_DISCOUNT},
	}
	weekendBracket = Bracket{Kind: WEEKEND, From: StartOfDay, To: EndOfDay, Discount: pkg.WEEKEND_DISCOUNT}
)

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// Classify picks the bracket of a span from its start day and start time only.
// Weekday ranges are half-open [From, To) except the last one, which is closed at 23:59:59.
func Classify(day time.Weekday, start TimeOfDay) Bracket {
	if isWeekend(day) {
		return weekendBracket
	}
	for _, b := range weekdayBrackets[:len(weekdayBrackets)-1] {
		if start >= b.From && start < b.To {
			return b
		}
	}
	return weekdayBrackets[len(weekdayBrackets)-1]
}

// Brackets lists every discount regime, weekday ranges first.
func Brackets() []Bracket {
	out := make([]Bracket, 0, len(weekdayBrackets)+1)
	out = append(out, weekdayBrackets...)
	return append(out, weekendBracket)
}
