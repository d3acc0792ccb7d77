package domain

// Driver represents a registered driver.
// Location is set at registration time and is not mutated afterward.
type Driver struct {
	ID         int64
	GivenName  string
	FamilyName string
	Location   Coordinate
}

// DriverWithDistance is a driver paired with its distance from a search origin.
type DriverWithDistance struct {
	Driver
	DistanceKm float64
}
