package controllers

import (
	"github.com/lintang-b-s/tollrate/pkg"
	"github.com/lintang-b-s/tollrate/pkg/analytics"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/lintang-b-s/tollrate/pkg/util"
)

type edgeRequest struct {
	IDStart  int64   `json:"id_start"`
	IDEnd    int64   `json:"id_end"`
	Distance float64 `json:"distance" validate:"min=0"`
}

type computeTollsRequest struct {
	Edges     []edgeRequest   `json:"edges" validate:"required,min=1,dive"`
	Reference *int64          `json:"reference_id"`
	Band      *float64        `json:"band" validate:"omitempty,min=0,max=1"`
	Spans     []toll.SpanSpec `json:"spans" validate:"omitempty,dive"`
}

func (r computeTollsRequest) toEdges() []da.Edge {
	edges := make([]da.Edge, len(r.Edges))
	for i, e := range r.Edges {
		edges[i] = da.NewEdge(da.ID(e.IDStart), da.ID(e.IDEnd), e.Distance)
	}
	return edges
}

func (r computeTollsRequest) reference() *da.ID {
	if r.Reference == nil {
		return nil
	}
	ref := da.ID(*r.Reference)
	return &ref
}

type matrixResponse struct {
	IDs    []int64     `json:"ids"`
	Values [][]float64 `json:"values"`
}

type unrolledEdgeResponse struct {
	IDStart  int64   `json:"id_start"`
	IDEnd    int64   `json:"id_end"`
	Distance float64 `json:"distance"`
}

type tollResponse struct {
	IDStart  int64   `json:"id_start"`
	IDEnd    int64   `json:"id_end"`
	Distance float64 `json:"distance"`
	Moto     float64 `json:"moto"`
	Car      float64 `json:"car"`
	RV       float64 `json:"rv"`
	Bus      float64 `json:"bus"`
	Truck    float64 `json:"truck"`
}

type timedTollResponse struct {
	tollResponse
	StartDay  string  `json:"start_day"`
	StartTime string  `json:"start_time"`
	EndDay    string  `json:"end_day"`
	EndTime   string  `json:"end_time"`
	Bracket   string  `json:"bracket"`
	Discount  float64 `json:"discount_factor"`
}

type computeTollsResponse struct {
	Matrix          matrixResponse         `json:"distance_matrix"`
	Unrolled        []unrolledEdgeResponse `json:"unrolled"`
	ReferenceID     int64                  `json:"reference_id"`
	Nearby          []int64                `json:"nearby_ids"`
	Tolls           []tollResponse         `json:"tolls"`
	TimedTolls      []timedTollResponse    `json:"timed_tolls,omitempty"`
	IncompletePairs int                    `json:"incomplete_schedule_pairs"`
}

func round(v float64) float64 {
	return util.RoundFloat(v, pkg.PRESENTATION_PRECISION)
}

func newTollResponse(r toll.TollRow) tollResponse {
	return tollResponse{
		IDStart:  int64(r.IDStart),
		IDEnd:    int64(r.IDEnd),
		Distance: round(r.Distance),
		Moto:     round(r.Moto),
		Car:      round(r.Car),
		RV:       round(r.RV),
		Bus:      round(r.Bus),
		Truck:    round(r.Truck),
	}
}

func NewComputeTollsResponse(res *engine.Result, includeTimed bool) computeTollsResponse {
	ids := res.Matrix.IDs()
	m := matrixResponse{IDs: make([]int64, len(ids)), Values: make([][]float64, len(ids))}
	for i, id := range ids {
		m.IDs[i] = int64(id)
		row := res.Matrix.Row(i)
		for j := range row {
			row[j] = round(row[j])
		}
		m.Values[i] = row
	}

	unrolled := make([]unrolledEdgeResponse, len(res.Unrolled))
	for i, e := range res.Unrolled {
		unrolled[i] = unrolledEdgeResponse{IDStart: int64(e.IDStart), IDEnd: int64(e.IDEnd), Distance: round(e.Distance)}
	}

	nearby := make([]int64, len(res.Nearby))
	for i, id := range res.Nearby {
		nearby[i] = int64(id)
	}

	tolls := make([]tollResponse, len(res.Tolls))
	for i, r := range res.Tolls {
		tolls[i] = newTollResponse(r)
	}

	resp := computeTollsResponse{
		Matrix:          m,
		Unrolled:        unrolled,
		ReferenceID:     int64(res.Reference),
		Nearby:          nearby,
		Tolls:           tolls,
		IncompletePairs: len(analytics.IncompletePairs(res.Coverage)),
	}
	if includeTimed {
		resp.TimedTolls = make([]timedTollResponse, len(res.TimedTolls))
		for i, r := range res.TimedTolls {
			resp.TimedTolls[i] = timedTollResponse{
				tollResponse: newTollResponse(r.TollRow),
				StartDay:     r.StartDay.String(),
				StartTime:    r.StartTime.String(),
				EndDay:       r.EndDay.String(),
				EndTime:      r.EndTime.String(),
				Bracket:      r.Bracket.Kind.String(),
				Discount:     r.Bracket.Discount,
			}
		}
	}
	return resp
}

type scheduleSpanResponse struct {
	toll.SpanSpec
	Bracket  string  `json:"bracket"`
	Discount float64 `json:"discount_factor"`
}

func NewScheduleResponse(spans []toll.Span) []scheduleSpanResponse {
	out := make([]scheduleSpanResponse, len(spans))
	for i, sp := range spans {
		b := toll.Classify(sp.StartDay, sp.StartTime)
		out[i] = scheduleSpanResponse{SpanSpec: sp.Spec(), Bracket: b.Kind.String(), Discount: b.Discount}
	}
	return out
}

type bracketResponse struct {
	Kind     string  `json:"kind"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Discount float64 `json:"discount_factor"`
}

func NewBracketsResponse(brackets []toll.Bracket) []bracketResponse {
	out := make([]bracketResponse, len(brackets))
	for i, b := range brackets {
		out[i] = bracketResponse{Kind: b.Kind.String(), From: b.From.String(), To: b.To.String(), Discount: b.Discount}
	}
	return out
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
