package service

import "errors"

var (
	// ErrInvalidDriverID is returned when a driver ID is not positive.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidPassengerID is returned when a passenger ID is not positive.
	ErrInvalidPassengerID = errors.New("invalid passenger id")

	// ErrInvalidTripID is returned when a trip ID is not positive.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidName is returned when a given or family name is empty.
	ErrInvalidName = errors.New("given name and family name are required")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidDistance is returned when a search distance is not positive.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInvalidPagination is returned when page or perPage is below 1.
	ErrInvalidPagination = errors.New("page and perPage must be at least 1")

	// ErrInvalidPrice is returned when a trip price is negative.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrActiveTripExists is returned when the driver or the passenger of a
	// new trip already has an active trip.
	ErrActiveTripExists = errors.New("driver or passenger already has an active trip")

	// ErrTripAlreadyCompleted is returned when completing a trip that has
	// already been completed.
	ErrTripAlreadyCompleted = errors.New("trip already completed")

	// ErrTripCreationContended is returned when another creation for the same
	// driver or passenger holds the party locks.
	ErrTripCreationContended = errors.New("trip creation already in progress for driver or passenger")
)
