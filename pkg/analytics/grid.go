package analytics

import (
	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	CAR_TOLL_LOW_MAX    = 15.0
	CAR_TOLL_MEDIUM_MAX = 25.0

	ADJUST_THRESHOLD  = 20.0
	ADJUST_HIGH_RATIO = 0.75
	ADJUST_LOW_RATIO  = 1.25

	DEFAULT_TRUCK_TOLL_LIMIT = 7.0
)

// TollGrid is a pivot of one vehicle toll: rows are id_start, columns id_end, both ascending.
// Cells without a toll row are 0.
type TollGrid struct {
	Starts []da.ID
	Ends   []da.ID
	Values [][]float64
}

func NewTollGrid(rows []toll.TollRow, v pkg.VehicleType) *TollGrid {
	startSet := make(map[da.ID]struct{})
	endSet := make(map[da.ID]struct{})
	for _, r := range rows {
		startSet[r.IDStart] = struct{}{}
		endSet[r.IDEnd] = struct{}{}
	}
	starts := sortedIDs(startSet)
	ends := sortedIDs(endSet)

	startIdx := indexOf(starts)
	endIdx := indexOf(ends)

	values := make([][]float64, len(starts))
	for i := range values {
		values[i] = make([]float64, len(ends))
	}
	for _, r := range rows {
		values[startIdx[r.IDStart]][endIdx[r.IDEnd]] = r.Toll(v)
	}
	return &TollGrid{Starts: starts, Ends: ends, Values: values}
}

// Adjust scales cells above 20 by 0.75 and the others by 1.25, rounded to one decimal.
func (g *TollGrid) Adjust() *TollGrid {
	values := make([][]float64, len(g.Values))
	for i, row := range g.Values {
		values[i] = make([]float64, len(row))
		for j, v := range row {
			if v > ADJUST_THRESHOLD {
				values[i][j] = util.RoundFloat(v*ADJUST_HIGH_RATIO, 1)
			} else {
				values[i][j] = util.RoundFloat(v*ADJUST_LOW_RATIO, 1)
			}
		}
	}
	return &TollGrid{
		Starts: slices.Clone(g.Starts),
		Ends:   slices.Clone(g.Ends),
		Values: values,
	}
}

// ClassifyCarTolls counts car tolls per class: low (<= 15), medium (15, 25], high (> 25).
func ClassifyCarTolls(rows []toll.TollRow) map[string]int {
	counts := make(map[string]int, 3)
	for _, r := range rows {
		switch {
		case r.Car <= CAR_TOLL_LOW_MAX:
			counts["low"]++
		case r.Car <= CAR_TOLL_MEDIUM_MAX:
			counts["medium"]++
		default:
			counts["high"]++
		}
	}
	return counts
}

// BusOutliers returns the ascending indexes of rows whose bus toll is greater than twice the mean bus toll.
func BusOutliers(rows []toll.TollRow) []int {
	if len(rows) == 0 {
		return []int{}
	}
	bus := make([]float64, len(rows))
	for i, r := range rows {
		bus[i] = r.Bus
	}
	limit := 2 * util.Mean(bus)
	out := make([]int, 0)
	for i, b := range bus {
		if b > limit {
			out = append(out, i)
		}
	}
	return out
}

// HeavyTruckStarts returns the ascending id_start values whose mean truck toll is greater than limit.
func HeavyTruckStarts(rows []toll.TollRow, limit float64) []da.ID {
	truck := make(map[da.ID][]float64)
	for _, r := range rows {
		truck[r.IDStart] = append(truck[r.IDStart], r.Truck)
	}
	out := make([]da.ID, 0)
	for id, ts := range truck {
		if util.Mean(ts) > limit {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func sortedIDs(set map[da.ID]struct{}) []da.ID {
	ids := make([]da.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func indexOf(ids []da.ID) map[da.ID]int {
	idx := make(map[da.ID]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}
