package geo

import (
	"math"
	"testing"

	"taxi24/internal/domain"
)

func TestGreatCircleDistanceKm_SamePointIsZero(t *testing.T) {
	points := []domain.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 1.23, Longitude: 4.56},
		{Latitude: -90, Longitude: 180},
		{Latitude: 18.4861, Longitude: -69.9312},
	}

	for _, p := range points {
		if got := GreatCircleDistanceKm(p, p); got != 0 {
			t.Errorf("distance(%v, %v) = %f, want 0", p, p, got)
		}
	}
}

func TestGreatCircleDistanceKm_Symmetry(t *testing.T) {
	a := domain.Coordinate{Latitude: 1.23, Longitude: 4.56}
	b := domain.Coordinate{Latitude: 10.0, Longitude: 20.0}

	d1 := GreatCircleDistanceKm(a, b)
	d2 := GreatCircleDistanceKm(b, a)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestGreatCircleDistanceKm_KnownMagnitudes(t *testing.T) {
	a := domain.Coordinate{Latitude: 1.23, Longitude: 4.56}
	b := domain.Coordinate{Latitude: 10.0, Longitude: 20.0}
	c := domain.Coordinate{Latitude: 1.2305, Longitude: 4.5605}

	far := GreatCircleDistanceKm(a, b)
	if far <= 1000 {
		t.Errorf("distance(a, b) = %f, want > 1000 km", far)
	}

	near := GreatCircleDistanceKm(a, c)
	if near >= 1 {
		t.Errorf("distance(a, c) = %f, want < 1 km", near)
	}
}

func TestGreatCircleDistanceKm_SantoDomingoToSantiago(t *testing.T) {
	santoDomingo := domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312}
	santiago := domain.Coordinate{Latitude: 19.4517, Longitude: -70.6970}

	got := GreatCircleDistanceKm(santoDomingo, santiago)
	if math.Abs(got-134) > 10 {
		t.Errorf("distance = %f, want ~134 km", got)
	}
}

func TestDegreesToRadians(t *testing.T) {
	cases := []struct {
		degrees float64
		want    float64
	}{
		{0, 0},
		{180, math.Pi},
		{-180, -math.Pi},
		{90, math.Pi / 2},
		{360, 2 * math.Pi},
	}

	for _, tc := range cases {
		if got := DegreesToRadians(tc.degrees); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("DegreesToRadians(%f) = %f, want %f", tc.degrees, got, tc.want)
		}
	}
}
