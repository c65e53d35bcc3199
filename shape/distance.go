package shape

import (
	"math"

	"github.com/pkg/errors"
)

const EarthMeanRadiusKm = 6371.0087714

// DistanceCalculator measures from a point to a coordinate, in the units of
// the context: degrees on the sphere or plain planar units.
type DistanceCalculator interface {
	Distance(from *Point, toX, toY float64) float64
}

type Haversine struct{}

func (Haversine) Distance(from *Point, toX, toY float64) float64 {
	if from.x == toX && from.y == toY {
		return 0
	}
	lat1 := toRadians(from.y)
	lat2 := toRadians(toY)
	dLat := lat2 - lat1
	dLon := toRadians(toX - from.x)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return toDegrees(c)
}

type LawOfCosines struct{}

func (LawOfCosines) Distance(from *Point, toX, toY float64) float64 {
	if from.x == toX && from.y == toY {
		return 0
	}
	lat1 := toRadians(from.y)
	lat2 := toRadians(toY)
	dLon := toRadians(toX - from.x)

	cos := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	// rounding can push this slightly past 1
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return toDegrees(math.Acos(cos))
}

type Cartesian struct{}

func (Cartesian) Distance(from *Point, toX, toY float64) float64 {
	return math.Hypot(toX-from.x, toY-from.y)
}

func distanceCalculator(name string, geo bool) (DistanceCalculator, error) {
	switch name {
	case "":
		if geo {
			return Haversine{}, nil
		}
		return Cartesian{}, nil
	case "haversine":
		return Haversine{}, nil
	case "lawOfCosines":
		return LawOfCosines{}, nil
	case "cartesian":
		return Cartesian{}, nil
	}
	return nil, errors.Errorf("Unknown distance calculator: %s", name)
}

func DegreesToKm(deg float64) float64 {
	return toRadians(deg) * EarthMeanRadiusKm
}

func KmToDegrees(km float64) float64 {
	return toDegrees(km / EarthMeanRadiusKm)
}
