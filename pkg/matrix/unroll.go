package matrix

import (
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
)

// Unroll flattens m back into an edge list, row-major over the matrix id ordering.
// Self pairs are dropped, so n ids give exactly n*(n-1) rows.
func Unroll(m *da.DistanceMatrix) []da.UnrolledEdge {
	n := m.Size()
	if n < 2 {
		return []da.UnrolledEdge{}
	}
	out := make([]da.UnrolledEdge, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			out = append(out, da.NewUnrolledEdge(m.GetID(i), m.GetID(j), m.At(i, j)))
		}
	}
	return out
}
