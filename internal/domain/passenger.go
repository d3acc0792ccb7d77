package domain

// Passenger represents a registered passenger.
type Passenger struct {
	ID         int64
	GivenName  string
	FamilyName string
}
