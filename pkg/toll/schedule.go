package toll

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/tollrate/pkg/util"
)

var (
	ErrInvalidTimeOfDay = errors.New("time of day must be within 00:00:00 and 23:59:59")
	ErrInvalidDay       = errors.New("unknown day of week")
	ErrInvalidSpan      = errors.New("span ends before it starts")
)

// TimeOfDay is the number of seconds since midnight.
type TimeOfDay int32

const (
	StartOfDay TimeOfDay = 0
	EndOfDay   TimeOfDay = 23*3600 + 59*60 + 59
)

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM". Fractional seconds are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, func(r rune) bool { return r != ':' && (r < '0' || r > '9') }) >= 0 {
		return 0, util.WrapErrorf(ErrInvalidTimeOfDay, util.ErrBadParamInput, "invalid time of day %q", s)
	}
	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err = time.Parse(layout, s)
		if err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, util.WrapErrorf(ErrInvalidTimeOfDay, util.ErrBadParamInput, "invalid time of day %q: %v", s, err)
}

func (t TimeOfDay) Valid() bool {
	return t >= StartOfDay && t <= EndOfDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, (t%3600)/60, t%60)
}

// weekOrder maps a weekday to its position in a Monday-first week.
func weekOrder(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Week is Monday..Sunday.
var Week = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func ParseDay(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Week {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, util.WrapErrorf(ErrInvalidDay, util.ErrBadParamInput, "invalid day of week %q", s)
}

// Span is a day/time interval a toll row is priced for. Both ends are inclusive.
type Span struct {
	StartDay  time.Weekday
	EndDay    time.Weekday
	StartTime TimeOfDay
	EndTime   TimeOfDay
}

func NewSpan(startDay, endDay time.Weekday, startTime, endTime TimeOfDay) (Span, error) {
	sp := Span{StartDay: startDay, EndDay: endDay, StartTime: startTime, EndTime: endTime}
	if err := sp.Validate(); err != nil {
		return Span{}, err
	}
	return sp, nil
}

func (sp Span) Validate() error {
	if !sp.StartTime.Valid() || !sp.EndTime.Valid() {
		return util.WrapErrorf(ErrInvalidTimeOfDay, util.ErrBadParamInput,
			"span %v-%v is outside 00:00:00 and 23:59:59", sp.StartTime, sp.EndTime)
	}
	if sp.StartDay < time.Sunday || sp.StartDay > time.Saturday || sp.EndDay < time.Sunday || sp.EndDay > time.Saturday {
		return util.WrapErrorf(ErrInvalidDay, util.ErrBadParamInput, "span days %d-%d are not weekdays", sp.StartDay, sp.EndDay)
	}
	startOrder, endOrder := weekOrder(sp.StartDay), weekOrder(sp.EndDay)
	if endOrder < startOrder || (endOrder == startOrder && sp.EndTime < sp.StartTime) {
		return util.WrapErrorf(ErrInvalidSpan, util.ErrBadParamInput, "span %s %v ends before %s %v",
			sp.EndDay, sp.EndTime, sp.StartDay, sp.StartTime)
	}
	return nil
}

// Days returns every weekday touched by the span, Monday-first.
func (sp Span) Days() []time.Weekday {
	return Week[weekOrder(sp.StartDay) : weekOrder(sp.EndDay)+1]
}

// SpanSpec is the textual form of a Span, e.g. {"Monday", "Monday", "10:00:00", "18:00:00"}.
type SpanSpec struct {
	StartDay  string `json:"start_day" validate:"required"`
	EndDay    string `json:"end_day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func ParseSpan(spec SpanSpec) (Span, error) {
	startDay, err := ParseDay(spec.StartDay)
	if err != nil {
		return Span{}, err
	}
	endDay, err := ParseDay(spec.EndDay)
	if err != nil {
		return Span{}, err
	}
	startTime, err := ParseTimeOfDay(spec.StartTime)
	if err != nil {
		return Span{}, err
	}
	endTime, err := ParseTimeOfDay(spec.EndTime)
	if err != nil {
		return Span{}, err
	}
	return NewSpan(startDay, endDay, startTime, endTime)
}

func (sp Span) Spec() SpanSpec {
	return SpanSpec{
		StartDay:  sp.StartDay.String(),
		EndDay:    sp.EndDay.String(),
		StartTime: sp.StartTime.String(),
		EndTime:   sp.EndTime.String(),
	}
}

var (
	morningPeakStart = NewTimeOfDay(10, 0, 0)
	eveningStart     = NewTimeOfDay(18, 0, 0)
)

// FullWeekSchedule returns the canonical span set: three brackets for each of Monday..Friday and
// one whole-day span for Saturday and Sunday.
func FullWeekSchedule() []Span {
	spans := make([]Span, 0, 17)
	for _, d := range Week {
		if isWeekend(d) {
			spans = append(spans, Span{StartDay: d, EndDay: d, StartTime: StartOfDay, EndTime: EndOfDay})
			continue
		}
		spans = append(spans,
			Span{StartDay: d, EndDay: d, StartTime: StartOfDay, EndTime: morningPeakStart},
			Span{StartDay: d, EndDay: d, StartTime: morningPeakStart, EndTime: eveningStart},
			Span{StartDay: d, EndDay: d, StartTime: eveningStart, EndTime: EndOfDay},
		)
	}
	return spans
}
