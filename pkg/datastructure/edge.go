package datastructure

import (
	"errors"

	"github.com/lintang-b-s/tollrate/pkg/util"
)

var (
	ErrEmptyEdges      = errors.New("edge set is empty")
	ErrInvalidDistance = errors.New("distance must be a finite non-negative number")
	ErrDuplicateEdge   = errors.New("duplicate (id_start, id_end) edge")
)

// ID identifies a location of the road network.
type ID int64

// Edge is one observed directed distance measurement.
type Edge struct {
	From     ID
	To       ID
	Distance float64
}

func NewEdge(from, to ID, distance float64) Edge {
	return Edge{From: from, To: to, Distance: distance}
}

type pairKey struct {
	from, to ID
}

// EdgeStore holds the raw observed edges of a snapshot. It is immutable after construction.
type EdgeStore struct {
	edges    []Edge
	ids      []ID
	observed map[pairKey]float64
}

// NewEdgeStore validates edges and keeps a private copy of them.
// Empty input, negative/NaN/Inf distances and repeated ordered pairs are rejected.
func NewEdgeStore(edges []Edge) (*EdgeStore, error) {
	if len(edges) == 0 {
		return nil, util.WrapErrorf(ErrEmptyEdges, util.ErrBadParamInput, "edge set must contain at least one edge")
	}

	es := &EdgeStore{
		edges:    make([]Edge, len(edges)),
		ids:      make([]ID, 0),
		observed: make(map[pairKey]float64, len(edges)),
	}
	copy(es.edges, edges)

	seen := make(map[ID]struct{})
	addID := func(id ID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		es.ids = append(es.ids, id)
	}

	for i, e := range es.edges {
		if !util.IsFiniteNonNegative(e.Distance) {
			return nil, util.WrapErrorf(ErrInvalidDistance, util.ErrBadParamInput,
				"edge %d (%d -> %d) has invalid distance %v", i, e.From, e.To, e.Distance)
		}
		key := pairKey{e.From, e.To}
		if _, dup := es.observed[key]; dup {
			return nil, util.WrapErrorf(ErrDuplicateEdge, util.ErrBadParamInput,
				"edge %d (%d -> %d) was already observed", i, e.From, e.To)
		}
		es.observed[key] = e.Distance
		addID(e.From)
		addID(e.To)
	}

	return es, nil
}

func (es *EdgeStore) NumberOfEdges() int {
	return len(es.edges)
}

func (es *EdgeStore) NumberOfIDs() int {
	return len(es.ids)
}

// Edges returns a copy of the stored edges in input order.
func (es *EdgeStore) Edges() []Edge {
	out := make([]Edge, len(es.edges))
	copy(out, es.edges)
	return out
}

// IDs returns the distinct ids in order of first appearance.
func (es *EdgeStore) IDs() []ID {
	out := make([]ID, len(es.ids))
	copy(out, es.ids)
	return out
}

// Distance returns the observed distance of the directed pair from->to.
func (es *EdgeStore) Distance(from, to ID) (float64, bool) {
	d, ok := es.observed[pairKey{from, to}]
	return d, ok
}
