package domain

import (
	"errors"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is an immutable geographic position in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Validate checks that the coordinate is within the WGS84 value ranges.
// Non-finite values are rejected: NaN compares false against both range
// bounds and would otherwise slip through into distance arithmetic.
func (c Coordinate) Validate() error {
	if !isFinite(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if !isFinite(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
