package analytics

import (
	"time"

	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"golang.org/x/exp/slices"
)

// Pair is an ordered (id_start, id_end) pair.
type Pair struct {
	IDStart da.ID
	IDEnd   da.ID
}

type interval struct {
	from, to toll.TimeOfDay
}

// Coverage reports, for every (id_start, id_end) pair in rows, whether its spans together cover all
// seven days from 00:00:00 to 23:59:59 without a gap. Touching spans (one ends at 10:00:00, the next
// starts at 10:00:00) count as contiguous.
func Coverage(rows []toll.TimedTollRow) map[Pair]bool {
	perPair := make(map[Pair]map[time.Weekday][]interval)
	for _, r := range rows {
		p := Pair{IDStart: r.IDStart, IDEnd: r.IDEnd}
		days, ok := perPair[p]
		if !ok {
			days = make(map[time.Weekday][]interval, 7)
			perPair[p] = days
		}
		sp := r.Span()
		covered := sp.Days()
		for i, d := range covered {
			iv := interval{from: toll.StartOfDay, to: toll.EndOfDay}
			if i == 0 {
				iv.from = sp.StartTime
			}
			if i == len(covered)-1 {
				iv.to = sp.EndTime
			}
			days[d] = append(days[d], iv)
		}
	}

	out := make(map[Pair]bool, len(perPair))
	for p, days := range perPair {
		complete := len(days) == 7
		for _, ivs := range days {
			if !complete {
				break
			}
			complete = coversWholeDay(ivs)
		}
		out[p] = complete
	}
	return out
}

func coversWholeDay(ivs []interval) bool {
	slices.SortFunc(ivs, func(a, b interval) int {
		return int(a.from) - int(b.from)
	})
	if ivs[0].from != toll.StartOfDay {
		return false
	}
	reach := ivs[0].to
	for _, iv := range ivs[1:] {
		if iv.from > reach+1 {
			return false
		}
		if iv.to > reach {
			reach = iv.to
		}
	}
	return reach >= toll.EndOfDay
}

// IncompletePairs returns the pairs whose coverage is false, sorted by (id_start, id_end).
func IncompletePairs(coverage map[Pair]bool) []Pair {
	out := make([]Pair, 0)
	for p, ok := range coverage {
		if !ok {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, comparePairs)
	return out
}

func comparePairs(a, b Pair) int {
	switch {
	case a.IDStart < b.IDStart:
		return -1
	case a.IDStart > b.IDStart:
		return 1
	case a.IDEnd < b.IDEnd:
		return -1
	case a.IDEnd > b.IDEnd:
		return 1
	default:
		return 0
	}
}
