package matrix

import (
	"errors"

	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"golang.org/x/exp/slices"
)

var (
	ErrReferenceNotFound = errors.New("reference id has no outgoing edges")
	ErrInvalidBand       = errors.New("threshold band must be a finite non-negative number")
)

// ThresholdFilter finds the ids whose mean outgoing distance lies within
// [(1-Band)*refMean, (1+Band)*refMean] of a reference id.
type ThresholdFilter struct {
	Band float64
}

func NewThresholdFilter(band float64) *ThresholdFilter {
	return &ThresholdFilter{Band: band}
}

func DefaultThresholdFilter() *ThresholdFilter {
	return NewThresholdFilter(pkg.DEFAULT_THRESHOLD_BAND)
}

type meanAcc struct {
	sum   float64
	count int
}

func accumulate(edges []da.UnrolledEdge) map[da.ID]*meanAcc {
	accs := make(map[da.ID]*meanAcc)
	for _, e := range edges {
		acc, ok := accs[e.IDStart]
		if !ok {
			acc = &meanAcc{}
			accs[e.IDStart] = acc
		}
		acc.sum += e.Distance
		acc.count++
	}
	return accs
}

// Nearby returns, sorted ascending, every id_start other than reference whose mean distance is
// inside the band. Bounds are inclusive.
func (tf *ThresholdFilter) Nearby(edges []da.UnrolledEdge, reference da.ID) ([]da.ID, error) {
	if !util.IsFiniteNonNegative(tf.Band) {
		return nil, util.WrapErrorf(ErrInvalidBand, util.ErrBadParamInput, "invalid threshold band %v", tf.Band)
	}

	accs := accumulate(edges)

	ref, ok := accs[reference]
	if !ok {
		return nil, util.WrapErrorf(ErrReferenceNotFound, util.ErrNotFound,
			"reference id %d does not appear as id_start", reference)
	}
	refMean := ref.sum / float64(ref.count)
	lower := (1 - tf.Band) * refMean
	upper := (1 + tf.Band) * refMean

	nearby := make([]da.ID, 0)
	for id, acc := range accs {
		if id == reference {
			continue
		}
		mean := acc.sum / float64(acc.count)
		if lower <= mean && mean <= upper {
			nearby = append(nearby, id)
		}
	}
	slices.Sort(nearby)
	return nearby, nil
}

// MeanDistances returns the mean outgoing distance of every id_start in edges.
func MeanDistances(edges []da.UnrolledEdge) map[da.ID]float64 {
	accs := accumulate(edges)
	means := make(map[da.ID]float64, len(accs))
	for id, acc := range accs {
		means[id] = acc.sum / float64(acc.count)
	}
	return means
}

// StartIDs returns the distinct id_start values of edges in ascending order.
func StartIDs(edges []da.UnrolledEdge) []da.ID {
	set := make(map[da.ID]struct{})
	for _, e := range edges {
		set[e.IDStart] = struct{}{}
	}
	ids := make([]da.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
