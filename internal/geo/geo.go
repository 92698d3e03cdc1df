// Package geo computes great-circle distances and travel-time estimates
// between coordinates. Straight-line distance is a deliberate proxy: the
// planner does not consult a road network.
package geo

import (
	"math"

	"food-rescue-service/internal/domain"
)

// Mean Earth radius in miles.
const earthRadiusMiles = 3958.8

// Assumed average urban driving speed.
const averageSpeedMPH = 25.0

// Distance returns the great-circle distance in miles between two points,
// rejecting out-of-range coordinates.
func Distance(a, b domain.Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c, nil
}

// TravelTime estimates driving minutes between two points at 25 mph, adds a
// fixed 5-minute urban buffer, and never returns less than 5 minutes.
func TravelTime(a, b domain.Coordinates) (int, error) {
	miles, err := Distance(a, b)
	if err != nil {
		return 0, err
	}

	minutes := int(math.Round(miles/averageSpeedMPH*60)) + 5
	if minutes < 5 {
		minutes = 5
	}
	return minutes, nil
}
