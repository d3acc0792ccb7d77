package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateActiveTrip is returned when inserting a trip would give a
	// driver or passenger a second active trip. The partial unique indexes on
	// the trips table raise this even when two creations race past the
	// service-level conflict check.
	ErrDuplicateActiveTrip = errors.New("party already has an active trip")
)
