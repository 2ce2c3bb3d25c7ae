package geo

import (
	"errors"
	"fmt"
	"math"
)

// Mean Earth radius in nautical miles
const earthRadiusNm = 3440.065

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// DistanceNm calculates the great-circle distance in nautical miles between
// two points using the haversine formula
func DistanceNm(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	if err := validateCoordinate(lat1, lon1); err != nil {
		return 0, err
	}
	if err := validateCoordinate(lat2, lon2); err != nil {
		return 0, err
	}

	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusNm * c, nil
}

// Bearing calculates the initial great-circle bearing in degrees (0-360)
// from the first point towards the second
func Bearing(lat1 float64, lon1 float64, lat2 float64, lon2 float64) (float64, error) {
	if err := validateCoordinate(lat1, lon1); err != nil {
		return 0, err
	}
	if err := validateCoordinate(lat2, lon2); err != nil {
		return 0, err
	}

	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLon := degreesToRadians(lon2 - lon1)

	y := math.Sin(deltaLon) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon)

	bearing := radiansToDegrees(math.Atan2(y, x))

	return math.Mod(bearing+360, 360), nil
}

func validateCoordinate(lat float64, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: (%f, %f)", ErrInvalidCoordinate, lat, lon)
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: (%f, %f) out of range", ErrInvalidCoordinate, lat, lon)
	}

	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func radiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
