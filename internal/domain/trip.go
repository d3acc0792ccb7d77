package domain

import "time"

// PriceCurrency is the only currency trips are priced in.
const PriceCurrency = "DOP"

// Trip represents an active or completed trip.
// IsActive is true exactly while EndDate is unset.
type Trip struct {
	ID            int64
	DriverID      int64
	PassengerID   int64
	StartLocation Coordinate
	EndLocation   Coordinate
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
	Price         float64
	PriceCurrency string
}

// CompletedTrip is a trip enriched for billing: party names plus the
// derived great-circle distance between its endpoints. The distance is
// computed, never stored.
type CompletedTrip struct {
	Trip
	DriverGivenName    string
	PassengerGivenName string
	DistanceKm         float64
}
