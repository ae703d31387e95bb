package usecases

import (
	"context"

	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/matrix"
	"github.com/lintang-b-s/tollrate/pkg/toll"
)

type PipelineEngine interface {
	RunWith(ctx context.Context, store *da.EdgeStore, reference *da.ID,
		filter *matrix.ThresholdFilter, timeBased *toll.TimeBasedCalculator) (*engine.Result, error)
	DefaultBand() float64
	Schedule() []toll.Span
}
