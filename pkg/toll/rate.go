package toll

import (
	"errors"

	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/util"
)

var ErrNegativeDistance = errors.New("toll distance must be a finite non-negative number")

// TollRow is an unrolled edge with one toll amount per vehicle type.
type TollRow struct {
	da.UnrolledEdge
	Moto  float64
	Car   float64
	RV    float64
	Bus   float64
	Truck float64
}

func NewTollRow(e da.UnrolledEdge) TollRow {
	return TollRow{
		UnrolledEdge: e,
		Moto:         e.Distance * pkg.MOTO_RATE,
		Car:          e.Distance * pkg.CAR_RATE,
		RV:           e.Distance * pkg.RV_RATE,
		Bus:          e.Distance * pkg.BUS_RATE,
		Truck:        e.Distance * pkg.TRUCK_RATE,
	}
}

func (tr TollRow) Toll(v pkg.VehicleType) float64 {
	switch v {
	case pkg.MOTO:
		return tr.Moto
	case pkg.CAR:
		return tr.Car
	case pkg.RV:
		return tr.RV
	case pkg.BUS:
		return tr.Bus
	case pkg.TRUCK:
		return tr.Truck
	default:
		return 0
	}
}

// Tolls returns the toll amounts in pkg.VehicleTypes order.
func (tr TollRow) Tolls() []float64 {
	return []float64{tr.Moto, tr.Car, tr.RV, tr.Bus, tr.Truck}
}

// scale multiplies every vehicle toll by factor, the edge itself is kept.
func (tr TollRow) scale(factor float64) TollRow {
	return TollRow{
		UnrolledEdge: tr.UnrolledEdge,
		Moto:         tr.Moto * factor,
		Car:          tr.Car * factor,
		RV:           tr.RV * factor,
		Bus:          tr.Bus * factor,
		Truck:        tr.Truck * factor,
	}
}

// ApplyBaseRates computes distance * rate for every vehicle type. No rounding is applied.
func ApplyBaseRates(edges []da.UnrolledEdge) ([]TollRow, error) {
	rows := make([]TollRow, 0, len(edges))
	for i, e := range edges {
		if !util.IsFiniteNonNegative(e.Distance) {
			return nil, util.WrapErrorf(ErrNegativeDistance, util.ErrBadParamInput,
				"row %d (%d -> %d) has invalid distance %v", i, e.IDStart, e.IDEnd, e.Distance)
		}
		rows = append(rows, NewTollRow(e))
	}
	return rows, nil
}
