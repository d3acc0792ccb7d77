// Package billing renders bill documents for completed trips.
package billing

import "taxi24/internal/domain"

// Renderer produces a bill document from a fully-resolved completed trip.
// The trip carries the party names and the derived distance; layout and
// formatting are the renderer's concern alone.
type Renderer interface {
	Render(trip *domain.CompletedTrip) ([]byte, error)
}
