package toll

import (
	"time"
)

// TimedTollRow is a TollRow priced for one span. The embedded vehicle tolls are already
// multiplied by Bracket.Discount.
type TimedTollRow struct {
	TollRow
	StartDay  time.Weekday
	EndDay    time.Weekday
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Bracket   Bracket
}

func (tr TimedTollRow) Span() Span {
	return Span{StartDay: tr.StartDay, EndDay: tr.EndDay, StartTime: tr.StartTime, EndTime: tr.EndTime}
}

type classifiedSpan struct {
	span    Span
	bracket Bracket
}

// TimeBasedCalculator expands toll rows over a fixed, validated span schedule.
// Spans are not clipped to bracket boundaries: a span straddling two regimes is priced by
// the regime of its start.
type TimeBasedCalculator struct {
	spans []classifiedSpan
}

// NewTimeBasedCalculator parses specs; an empty schedule means FullWeekSchedule.
func NewTimeBasedCalculator(specs []SpanSpec) (*TimeBasedCalculator, error) {
	if len(specs) == 0 {
		return NewTimeBasedCalculatorFromSpans(FullWeekSchedule())
	}
	spans := make([]Span, 0, len(specs))
	for _, spec := range specs {
		sp, err := ParseSpan(spec)
		if err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return NewTimeBasedCalculatorFromSpans(spans)
}

func NewTimeBasedCalculatorFromSpans(spans []Span) (*TimeBasedCalculator, error) {
	tc := &TimeBasedCalculator{spans: make([]classifiedSpan, 0, len(spans))}
	for _, sp := range spans {
		if err := sp.Validate(); err != nil {
			return nil, err
		}
		tc.spans = append(tc.spans, classifiedSpan{span: sp, bracket: Classify(sp.StartDay, sp.StartTime)})
	}
	return tc, nil
}

func DefaultTimeBasedCalculator() *TimeBasedCalculator {
	tc, err := NewTimeBasedCalculatorFromSpans(FullWeekSchedule())
	if err != nil {
		panic(err)
	}
	return tc
}

// Schedule returns the spans in expansion order.
func (tc *TimeBasedCalculator) Schedule() []Span {
	out := make([]Span, len(tc.spans))
	for i, cs := range tc.spans {
		out[i] = cs.span
	}
	return out
}

// ApplyTimeDiscounts emits len(rows)*len(schedule) rows: for each input row, one row per span in
// schedule order.
func (tc *TimeBasedCalculator) ApplyTimeDiscounts(rows []TollRow) []TimedTollRow {
	out := make([]TimedTollRow, 0, len(rows)*len(tc.spans))
	for _, row := range rows {
		for _, cs := range tc.spans {
			out = append(out, TimedTollRow{
				TollRow:   row.scale(cs.bracket.Discount),
				StartDay:  cs.span.StartDay,
				EndDay:    cs.span.EndDay,
				StartTime: cs.span.StartTime,
				EndTime:   cs.span.EndTime,
				Bracket:   cs.bracket,
			})
		}
	}
	return out
}
