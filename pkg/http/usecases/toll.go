package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/matrix"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"go.uber.org/zap"
)

type TollService struct {
	log    *zap.Logger
	engine PipelineEngine
	cache  *lru.Cache[string, *engine.Result]
}

func NewTollService(log *zap.Logger, tollEngine PipelineEngine, cacheSize int) (*TollService, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *engine.Result](cacheSize)
	if err != nil {
		return nil, err
	}
	return &TollService{
		log:    log,
		engine: tollEngine,
		cache:  cache,
	}, nil
}

// ComputeTolls runs the whole pipeline over edges. band == nil uses the engine's default band,
// empty spans the engine's schedule.
// Identical requests are answered from an LRU cache; results are never mutated after creation.
func (ts *TollService) ComputeTolls(ctx context.Context, edges []da.Edge, reference *da.ID,
	band *float64, spans []toll.SpanSpec) (*engine.Result, error) {
	b := ts.engine.DefaultBand()
	if band != nil {
		b = *band
	}

	var timeBased *toll.TimeBasedCalculator
	if len(spans) > 0 {
		tc, err := toll.NewTimeBasedCalculator(spans)
		if err != nil {
			return nil, err
		}
		timeBased = tc
	}

	key := requestKey(edges, reference, b, spans)
	if res, ok := ts.cache.Get(key); ok {
		ts.log.Debug("toll result served from cache", zap.String("key", key[:12]))
		return res, nil
	}

	store, err := da.NewEdgeStore(edges)
	if err != nil {
		return nil, err
	}

	res, err := ts.engine.RunWith(ctx, store, reference, matrix.NewThresholdFilter(b), timeBased)
	if err != nil {
		return nil, err
	}
	ts.cache.Add(key, res)
	return res, nil
}

func (ts *TollService) Schedule() []toll.Span {
	return ts.engine.Schedule()
}

func requestKey(edges []da.Edge, reference *da.ID, band float64, spans []toll.SpanSpec) string {
	h := sha256.New()
	buf := make([]byte, 8)
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		h.Write(buf)
	}
	for _, e := range edges {
		put(uint64(e.From))
		put(uint64(e.To))
		put(math.Float64bits(e.Distance))
	}
	if reference != nil {
		h.Write([]byte{1})
		put(uint64(*reference))
	} else {
		h.Write([]byte{0})
	}
	put(math.Float64bits(band))
	for _, sp := range spans {
		for _, f := range []string{sp.StartDay, sp.EndDay, sp.StartTime, sp.EndTime} {
			put(uint64(len(f)))
			h.Write([]byte(f))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
