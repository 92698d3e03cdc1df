package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// InvalidCoordinateError reports a latitude/longitude outside the valid range.
type InvalidCoordinateError struct {
	Lat float64
	Lon float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinates: lat=%v lon=%v", e.Lat, e.Lon)
}

// Validate rejects latitudes outside [-90, 90] and longitudes outside [-180, 180].
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return &InvalidCoordinateError{Lat: c.Lat, Lon: c.Lon}
	}
	return nil
}

// Located is implemented by every entity that occupies a geographic position
// (stores, banks, region depots). Route planning only ever needs this view.
type Located interface {
	Coordinate() Coordinates
}
