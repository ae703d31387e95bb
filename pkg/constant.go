package pkg

// enum of vehicle_type
type VehicleType uint8

const (
	MOTO VehicleType = iota
	CAR
	RV
	BUS
	TRUCK
)

// VehicleTypes in output column order.
var VehicleTypes = []VehicleType{MOTO, CAR, RV, BUS, TRUCK}

const (
	MOTO_RATE  float64 = 0.8
	CAR_RATE   float64 = 1.2
	RV_RATE    float64 = 1.5
	BUS_RATE   float64 = 2.2
	TRUCK_RATE float64 = 3.6
)

const (
	WEEKDAY_OFF_PEAK_DISCOUNT = 0.8
	WEEKDAY_PEAK_DISCOUNT     = 1.2
	WEEKEND_DISCOUNT          = 0.7

	DEFAULT_THRESHOLD_BAND = 0.1 // 10%
	PRESENTATION_PRECISION = 2
)

func (v VehicleType) Rate() float64 {
	switch v {
	case MOTO:
		return MOTO_RATE
	case CAR:
		return CAR_RATE
	case RV:
		return RV_RATE
	case BUS:
		return BUS_RATE
	case TRUCK:
		return TRUCK_RATE
	default:
		return 0
	}
}

func (v VehicleType) String() string {
	switch v {
	case MOTO:
		return "moto"
	case CAR:
		return "car"
	case RV:
		return "rv"
	case BUS:
		return "bus"
	case TRUCK:
		return "truck"
	default:
		return "unknown"
	}
}

func GetVehicleType(vehicle string) (VehicleType, bool) {
	switch vehicle {
	case "moto":
		return MOTO, true
	case "car":
		return CAR, true
	case "rv":
		return RV, true
	case "bus":
		return BUS, true
	case "truck":
		return TRUCK, true
	default:
		return 0, false
	}
}
