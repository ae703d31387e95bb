package engine

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/tollrate/pkg/analytics"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/matrix"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNoUnrolledEdges = errors.New("distance matrix has fewer than two ids")

// Result holds the output of every stage of one run.
type Result struct {
	Matrix     *da.DistanceMatrix
	Unrolled   []da.UnrolledEdge
	Reference  da.ID
	Nearby     []da.ID
	Tolls      []toll.TollRow
	TimedTolls []toll.TimedTollRow
	Coverage   map[analytics.Pair]bool
}

type Engine struct {
	builder   *matrix.Builder
	filter    *matrix.ThresholdFilter
	timeBased *toll.TimeBasedCalculator
	logger    *zap.Logger
}

func NewEngine(builder *matrix.Builder, filter *matrix.ThresholdFilter, timeBased *toll.TimeBasedCalculator,
	logger *zap.Logger) *Engine {
	return &Engine{
		builder:   builder,
		filter:    filter,
		timeBased: timeBased,
		logger:    logger,
	}
}

// NewEngineFromConfig wires the stages with the full week schedule.
func NewEngineFromConfig(cfg util.PipelineConfig, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewEngine(matrix.NewBuilder(cfg.MatrixWorkers), matrix.NewThresholdFilter(cfg.ThresholdBand),
		toll.DefaultTimeBasedCalculator(), logger), nil
}

func (e *Engine) DefaultBand() float64 {
	return e.filter.Band
}

// Schedule returns the spans every toll row is expanded over.
func (e *Engine) Schedule() []toll.Span {
	return e.timeBased.Schedule()
}

// Run executes EdgeStore -> matrix -> unrolled edges -> {threshold filter, base tolls -> timed tolls}.
// When reference is nil the id_start of the first unrolled edge is used.
// Any stage failure aborts the run, no partial result is returned.
func (e *Engine) Run(ctx context.Context, store *da.EdgeStore, reference *da.ID) (*Result, error) {
	return e.RunWithFilter(ctx, store, reference, e.filter)
}

// RunWithFilter is Run with a caller supplied threshold filter.
func (e *Engine) RunWithFilter(ctx context.Context, store *da.EdgeStore, reference *da.ID,
	filter *matrix.ThresholdFilter) (*Result, error) {
	return e.RunWith(ctx, store, reference, filter, e.timeBased)
}

// RunWith is Run with a caller supplied threshold filter and span schedule. A nil filter or
// timeBased falls back to the engine's own.
func (e *Engine) RunWith(ctx context.Context, store *da.EdgeStore, reference *da.ID,
	filter *matrix.ThresholdFilter, timeBased *toll.TimeBasedCalculator) (*Result, error) {
	if filter == nil {
		filter = e.filter
	}
	if timeBased == nil {
		timeBased = e.timeBased
	}
	start := time.Now()

	m, err := e.builder.Build(ctx, store)
	if err != nil {
		return nil, err
	}
	e.logger.Info("distance matrix built", zap.Int("ids", m.Size()), zap.Int("edges", store.NumberOfEdges()))

	unrolled := matrix.Unroll(m)
	if len(unrolled) == 0 {
		return nil, util.WrapErrorf(ErrNoUnrolledEdges, util.ErrBadParamInput,
			"need at least two distinct ids to unroll the distance matrix, got %d", m.Size())
	}
	e.logger.Info("distance matrix unrolled", zap.Int("rows", len(unrolled)))

	ref := unrolled[0].IDStart
	if reference != nil {
		ref = *reference
	}

	res := &Result{
		Matrix:    m,
		Unrolled:  unrolled,
		Reference: ref,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nearby, err := filter.Nearby(unrolled, ref)
		if err != nil {
			return err
		}
		res.Nearby = nearby
		return nil
	})
	g.Go(func() error {
		tolls, err := toll.ApplyBaseRates(unrolled)
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		res.Tolls = tolls
		res.TimedTolls = timeBased.ApplyTimeDiscounts(tolls)
		res.Coverage = analytics.Coverage(res.TimedTolls)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	incomplete := analytics.IncompletePairs(res.Coverage)
	if len(incomplete) > 0 {
		e.logger.Warn("toll schedule does not cover the full week", zap.Int("pairs", len(incomplete)))
	}

	e.logger.Sugar().Infof("toll computation done: reference %d, %d nearby ids, %d toll rows, %d timed rows in %v",
		ref, len(res.Nearby), len(res.Tolls), len(res.TimedTolls), time.Since(start))
	return res, nil
}
