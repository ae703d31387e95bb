package controllers

import (
	"context"

	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/toll"
)

type TollService interface {
	ComputeTolls(ctx context.Context, edges []da.Edge, reference *da.ID, band *float64,
		spans []toll.SpanSpec) (*engine.Result, error)
	Schedule() []toll.Span
}
