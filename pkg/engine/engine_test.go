package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/matrix"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, workers int) *Engine {
	t.Helper()
	e, err := NewEngineFromConfig(util.PipelineConfig{ThresholdBand: 0.1, MatrixWorkers: workers}, zap.NewNop())
	require.NoError(t, err)
	return e
}

func newStore(t *testing.T, edges ...da.Edge) *da.EdgeStore {
	t.Helper()
	es, err := da.NewEdgeStore(edges)
	require.NoError(t, err)
	return es
}

func TestRunScenario(t *testing.T) {
	e := newTestEngine(t, 1)
	store := newStore(t, da.NewEdge(1, 2, 10), da.NewEdge(2, 1, 12))

	res, err := e.Run(context.Background(), store, nil)
	require.NoError(t, err)

	assert.Equal(t, []da.UnrolledEdge{da.NewUnrolledEdge(1, 2, 11), da.NewUnrolledEdge(2, 1, 11)}, res.Unrolled)
	assert.Equal(t, da.ID(1), res.Reference)
	assert.Equal(t, []da.ID{2}, res.Nearby)

	require.Len(t, res.Tolls, 2)
	assert.InDelta(t, 13.2, res.Tolls[0].Car, 1e-9)

	require.Len(t, res.TimedTolls, 2*17)
	peak := res.TimedTolls[1]
	assert.Equal(t, toll.NewTimeOfDay(10, 0, 0), peak.StartTime)
	assert.InDelta(t, 15.84, peak.Car, 1e-9)
	assert.InDelta(t, 11*pkg.TRUCK_RATE*pkg.WEEKDAY_PEAK_DISCOUNT, peak.Truck, 1e-9)

	for _, complete := range res.Coverage {
		assert.True(t, complete)
	}
}

func TestRunWithReference(t *testing.T) {
	e := newTestEngine(t, 4)
	store := newStore(t,
		da.NewEdge(10, 20, 100),
		da.NewEdge(20, 10, 100),
		da.NewEdge(20, 30, 90),
		da.NewEdge(30, 20, 90),
		da.NewEdge(10, 30, 200),
	)

	ref := da.ID(20)
	res, err := e.Run(context.Background(), store, &ref)
	require.NoError(t, err)
	assert.Equal(t, ref, res.Reference)
	assert.NotContains(t, res.Nearby, ref)
	assert.Len(t, res.Unrolled, 6)
}

func TestRunWithFilterOverridesBand(t *testing.T) {
	e := newTestEngine(t, 1)
	store := newStore(t,
		da.NewEdge(1, 2, 100),
		da.NewEdge(1, 3, 100),
		da.NewEdge(2, 3, 300),
	)

	narrow, err := e.Run(context.Background(), store, nil)
	require.NoError(t, err)
	wide, err := e.RunWithFilter(context.Background(), store, nil, matrix.NewThresholdFilter(1))
	require.NoError(t, err)
	assert.Subset(t, wide.Nearby, narrow.Nearby)
	assert.Equal(t, []da.ID{2, 3}, wide.Nearby)
	assert.Equal(t, 0.1, e.DefaultBand())
	assert.Len(t, e.Schedule(), 17)
}

func TestRunWithSchedule(t *testing.T) {
	e := newTestEngine(t, 1)
	store := newStore(t, da.NewEdge(1, 2, 10), da.NewEdge(2, 1, 12))

	weekend, err := toll.NewTimeBasedCalculator([]toll.SpanSpec{
		{StartDay: "Saturday", EndDay: "Sunday", StartTime: "00:00:00", EndTime: "23:59:59"},
	})
	require.NoError(t, err)

	res, err := e.RunWith(context.Background(), store, nil, nil, weekend)
	require.NoError(t, err)
	require.Len(t, res.TimedTolls, 2)
	assert.InDelta(t, 11*pkg.CAR_RATE*pkg.WEEKEND_DISCOUNT, res.TimedTolls[0].Car, 1e-9)
	assert.Equal(t, []da.ID{2}, res.Nearby)
	for _, complete := range res.Coverage {
		assert.False(t, complete)
	}

	res, err = e.RunWith(context.Background(), store, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, res.TimedTolls, 2*17)
	assert.Len(t, e.Schedule(), 17)
}

func TestRunErrors(t *testing.T) {
	e := newTestEngine(t, 1)

	t.Run("unknown reference", func(t *testing.T) {
		ref := da.ID(99)
		res, err := e.Run(context.Background(), newStore(t, da.NewEdge(1, 2, 10)), &ref)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, util.ErrNotFound))
		assert.True(t, errors.Is(err, matrix.ErrReferenceNotFound))
	})

	t.Run("single id", func(t *testing.T) {
		_, err := e.Run(context.Background(), newStore(t, da.NewEdge(1, 1, 10)), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
		assert.True(t, errors.Is(err, ErrNoUnrolledEdges))
	})

	t.Run("empty store", func(t *testing.T) {
		_, err := e.Run(context.Background(), nil, nil)
		assert.True(t, errors.Is(err, da.ErrEmptyEdges))
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewEngineFromConfig(util.PipelineConfig{ThresholdBand: -1, MatrixWorkers: 1}, zap.NewNop())
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	})
}
