package concurrent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

func TestWorkerPool(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		numJobs    int
	}{
		{name: "single worker", numWorkers: 1, numJobs: 10},
		{name: "more workers than jobs", numWorkers: 16, numJobs: 5},
		{name: "zero workers falls back to one", numWorkers: 0, numJobs: 3},
		{name: "many jobs", numWorkers: 8, numJobs: 500},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool[int, int](tt.numWorkers, tt.numJobs)
			for i := 0; i < tt.numJobs; i++ {
				wp.AddJob(i)
			}
			wp.Close()
			wp.Start(context.Background(), func(job int) int {
				return job * job
			})
			wp.Wait()

			got := make([]int, 0, tt.numJobs)
			for r := range wp.CollectResults() {
				got = append(got, r)
			}
			slices.Sort(got)

			want := make([]int, tt.numJobs)
			for i := range want {
				want[i] = i * i
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestWorkerPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(ctx, func(job int) int { return job })
	wp.Wait()

	n := 0
	for range wp.CollectResults() {
		n++
	}
	assert.Equal(t, 0, n)
}
