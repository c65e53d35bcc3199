package shape

import "math"

// NormLonDeg puts a longitude into [-180, 180].
func NormLonDeg(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	off := math.Mod(lon+180, 360)
	if off < 0 {
		return 180 + off
	} else if off == 0 && lon > 0 {
		return 180
	}
	return -180 + off
}

// NormLatDeg folds a latitude over the poles into [-90, 90].
func NormLatDeg(lat float64) float64 {
	if lat >= -90 && lat <= 90 {
		return lat
	}
	off := math.Abs(math.Mod(lat+90, 360))
	if off <= 180 {
		return off - 90
	}
	return 360 - off - 90
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
