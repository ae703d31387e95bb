package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistanceMatrix(t *testing.T) {
	m, err := NewDistanceMatrix([]ID{7, 3}, []float64{0, 4, 4, 0})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Size())
	assert.Equal(t, []ID{7, 3}, m.IDs())

	d, ok := m.Get(7, 3)
	assert.True(t, ok)
	assert.Equal(t, 4.0, d)

	_, ok = m.Get(7, 8)
	assert.False(t, ok)

	i, ok := m.Index(3)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, []float64{4, 0}, m.Row(1))
}

func TestNewDistanceMatrixRejectsBadShape(t *testing.T) {
	_, err := NewDistanceMatrix([]ID{1, 2}, []float64{0, 1, 1})
	assert.Error(t, err)

	_, err = NewDistanceMatrix([]ID{1, 1}, []float64{0, 0, 0, 0})
	assert.Error(t, err)
}
