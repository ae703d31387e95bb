package toll

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBaseRates(t *testing.T) {
	edges := []da.UnrolledEdge{
		da.NewUnrolledEdge(1, 2, 11),
		da.NewUnrolledEdge(2, 1, 11),
		da.NewUnrolledEdge(1, 3, 0),
		da.NewUnrolledEdge(3, 1, 123.456),
	}

	rows, err := ApplyBaseRates(edges)
	require.NoError(t, err)
	require.Len(t, rows, len(edges))

	for i, r := range rows {
		assert.Equal(t, edges[i], r.UnrolledEdge)
		assert.Equal(t, edges[i].Distance*1.2, r.Car)
		assert.Equal(t, edges[i].Distance*0.8, r.Moto)
		assert.Equal(t, edges[i].Distance*1.5, r.RV)
		assert.Equal(t, edges[i].Distance*2.2, r.Bus)
		assert.Equal(t, edges[i].Distance*3.6, r.Truck)
		for _, v := range pkg.VehicleTypes {
			assert.Equal(t, edges[i].Distance*v.Rate(), r.Toll(v))
		}
	}

	assert.InDelta(t, 13.2, rows[0].Car, 1e-9)
	assert.InDelta(t, 13.2, rows[1].Car, 1e-9)
}

func TestApplyBaseRatesRejectsInvalidDistance(t *testing.T) {
	testCases := []struct {
		name     string
		distance float64
	}{
		{name: "negative", distance: -0.5},
		{name: "nan", distance: math.NaN()},
		{name: "infinite", distance: math.Inf(1)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyBaseRates([]da.UnrolledEdge{da.NewUnrolledEdge(1, 2, 3), da.NewUnrolledEdge(2, 1, tt.distance)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrBadParamInput))
			assert.True(t, errors.Is(err, ErrNegativeDistance))
		})
	}
}

func TestApplyBaseRatesEmpty(t *testing.T) {
	rows, err := ApplyBaseRates(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
