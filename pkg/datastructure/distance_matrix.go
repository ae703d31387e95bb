package datastructure

import (
	"fmt"
)

// DistanceMatrix is a dense n x n distance table over the ids of an EdgeStore.
// values is stored row-major: values[i*n+j] = distance(ids[i], ids[j]).
type DistanceMatrix struct {
	ids    []ID
	index  map[ID]int
	values []float64
}

// NewDistanceMatrix takes ownership of values, which must hold len(ids)^2 entries in row-major order.
func NewDistanceMatrix(ids []ID, values []float64) (*DistanceMatrix, error) {
	n := len(ids)
	if len(values) != n*n {
		return nil, fmt.Errorf("distance matrix over %d ids needs %d values, got %d", n, n*n, len(values))
	}
	index := make(map[ID]int, n)
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("id %d appears twice in the matrix ordering", id)
		}
		index[id] = i
	}
	ownIds := make([]ID, n)
	copy(ownIds, ids)
	return &DistanceMatrix{
		ids:    ownIds,
		index:  index,
		values: values,
	}, nil
}

func (m *DistanceMatrix) Size() int {
	return len(m.ids)
}

// IDs returns the row/column ordering of the matrix.
func (m *DistanceMatrix) IDs() []ID {
	out := make([]ID, len(m.ids))
	copy(out, m.ids)
	return out
}

func (m *DistanceMatrix) GetID(i int) ID {
	return m.ids[i]
}

func (m *DistanceMatrix) Index(id ID) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns the value at row i, column j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.values[i*len(m.ids)+j]
}

// Get returns the distance between a and b; false if either id is not part of the matrix.
func (m *DistanceMatrix) Get(a, b ID) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// Row returns a copy of row i.
func (m *DistanceMatrix) Row(i int) []float64 {
	n := len(m.ids)
	out := make([]float64, n)
	copy(out, m.values[i*n:(i+1)*n])
	return out
}

// UnrolledEdge is one row of the flattened matrix. IDStart is never equal to IDEnd.
type UnrolledEdge struct {
	IDStart  ID
	IDEnd    ID
	Distance float64
}

func NewUnrolledEdge(idStart, idEnd ID, distance float64) UnrolledEdge {
	return UnrolledEdge{IDStart: idStart, IDEnd: idEnd, Distance: distance}
}
