package matrix

import (
	"context"

	"github.com/lintang-b-s/tollrate/pkg/concurrent"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/util"
)

// Builder turns the sparse observed edges of an EdgeStore into a dense symmetric DistanceMatrix.
//
// For every pair {a,b}: matrix[a][b] = matrix[b][a] = (d(a,b) + d(b,a)) / 2, where an unobserved
// direction counts as 0. This halves the distance of pairs observed in one direction only.
// Pairs never observed stay 0, which does not mean a and b are adjacent.
// The diagonal is always 0, self edges in the input are ignored.
type Builder struct {
	workers int
}

func NewBuilder(workers int) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{workers: workers}
}

type rowResult struct {
	i   int
	row []float64
}

func (b *Builder) Build(ctx context.Context, store *da.EdgeStore) (*da.DistanceMatrix, error) {
	if store == nil || store.NumberOfEdges() == 0 {
		return nil, util.WrapErrorf(da.ErrEmptyEdges, util.ErrBadParamInput, "cannot build a distance matrix without edges")
	}

	ids := store.IDs()
	n := len(ids)
	values := make([]float64, n*n)

	if b.workers == 1 || n < 2 {
		for i := 0; i < n; i++ {
			if util.StopConcurrentOperation(ctx) {
				return nil, ctx.Err()
			}
			copy(values[i*n:(i+1)*n], symmetricRow(store, ids, i))
		}
		return da.NewDistanceMatrix(ids, values)
	}

	workers := concurrent.NewWorkerPool[int, rowResult](util.MinInt(b.workers, n), n)
	for i := 0; i < n; i++ {
		workers.AddJob(i)
	}
	workers.Close()
	workers.Start(ctx, func(i int) rowResult {
		return rowResult{i: i, row: symmetricRow(store, ids, i)}
	})
	workers.Wait()

	filled := 0
	for res := range workers.CollectResults() {
		copy(values[res.i*n:(res.i+1)*n], res.row)
		filled++
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	util.AssertPanic(filled == n, "distance matrix builder lost rows")

	return da.NewDistanceMatrix(ids, values)
}

func symmetricRow(store *da.EdgeStore, ids []da.ID, i int) []float64 {
	row := make([]float64, len(ids))
	a := ids[i]
	for j, b := range ids {
		if i == j {
			continue
		}
		row[j] = symmetricDistance(store, a, b)
	}
	return row
}

// symmetricDistance is commutative in a and b, so both triangle halves get the same value.
func symmetricDistance(store *da.EdgeStore, a, b da.ID) float64 {
	dab, okab := store.Distance(a, b)
	dba, okba := store.Distance(b, a)
	if !okab && !okba {
		return 0
	}
	return (dab + dba) / 2
}
