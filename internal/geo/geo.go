// Package geo provides pure great-circle geometry helpers.
package geo

import (
	"math"

	"taxi24/internal/domain"
)

// EarthRadiusKm is the spherical Earth radius used for distance computation.
const EarthRadiusKm = 6371.0

// DegreesToRadians converts decimal degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// GreatCircleDistanceKm returns the distance in kilometers between two
// coordinates using the spherical law of cosines. The acos argument is
// clamped to [-1, 1] so that coincident points do not fall outside the
// acos domain through floating-point rounding.
func GreatCircleDistanceKm(a, b domain.Coordinate) float64 {
	lat1 := DegreesToRadians(a.Latitude)
	lat2 := DegreesToRadians(b.Latitude)
	deltaLon := DegreesToRadians(b.Longitude) - DegreesToRadians(a.Longitude)

	cosine := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(deltaLon)
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}

	return EarthRadiusKm * math.Acos(cosine)
}
