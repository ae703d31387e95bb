package analytics

import (
	"testing"

	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRows(t *testing.T, edges ...da.UnrolledEdge) []toll.TollRow {
	t.Helper()
	rows, err := toll.ApplyBaseRates(edges)
	require.NoError(t, err)
	return rows
}

func TestNewTollGrid(t *testing.T) {
	rows := baseRows(t,
		da.NewUnrolledEdge(2, 1, 10),
		da.NewUnrolledEdge(1, 2, 10),
		da.NewUnrolledEdge(1, 3, 5),
		da.NewUnrolledEdge(3, 1, 5),
	)

	g := NewTollGrid(rows, pkg.CAR)
	assert.Equal(t, []da.ID{1, 2, 3}, g.Starts)
	assert.Equal(t, []da.ID{1, 2, 3}, g.Ends)
	require.Len(t, g.Values, 3)
	assert.Equal(t, 0.0, g.Values[0][0])
	assert.Equal(t, 10*pkg.CAR_RATE, g.Values[0][1])
	assert.Equal(t, 5*pkg.CAR_RATE, g.Values[0][2])
	assert.Equal(t, 10*pkg.CAR_RATE, g.Values[1][0])
	assert.Equal(t, 0.0, g.Values[1][2])
}

func TestTollGridAdjust(t *testing.T) {
	g := &TollGrid{
		Starts: []da.ID{1, 2},
		Ends:   []da.ID{1, 2},
		Values: [][]float64{{0, 24}, {20, 10}},
	}
	adj := g.Adjust()
	assert.Equal(t, [][]float64{{0, 18}, {25, 12.5}}, adj.Values)
	assert.Equal(t, g.Starts, adj.Starts)
	assert.Equal(t, [][]float64{{0, 24}, {20, 10}}, g.Values)
}

func TestClassifyCarTolls(t *testing.T) {
	rows := baseRows(t,
		da.NewUnrolledEdge(1, 2, 11),   // 13.2
		da.NewUnrolledEdge(1, 3, 12),   // 14.4
		da.NewUnrolledEdge(2, 1, 15),   // 18
		da.NewUnrolledEdge(3, 1, 25),   // 30
	)
	got := ClassifyCarTolls(rows)
	assert.Equal(t, map[string]int{"low": 2, "medium": 1, "high": 1}, got)
}

func TestBusOutliers(t *testing.T) {
	rows := baseRows(t,
		da.NewUnrolledEdge(1, 2, 1),
		da.NewUnrolledEdge(1, 3, 1),
		da.NewUnrolledEdge(2, 1, 1),
		da.NewUnrolledEdge(3, 1, 10),
	)
	assert.Equal(t, []int{3}, BusOutliers(rows))
	assert.Empty(t, BusOutliers(nil))
}

func TestHeavyTruckStarts(t *testing.T) {
	rows := baseRows(t,
		da.NewUnrolledEdge(1, 2, 1),
		da.NewUnrolledEdge(1, 3, 1),
		da.NewUnrolledEdge(3, 1, 2),
		da.NewUnrolledEdge(2, 1, 10),
	)
	assert.Equal(t, []da.ID{2, 3}, HeavyTruckStarts(rows, DEFAULT_TRUCK_TOLL_LIMIT))
	assert.Equal(t, []da.ID{2}, HeavyTruckStarts(rows, 10))
}
