package billing

import (
	"bytes"
	"testing"
	"time"

	"taxi24/internal/domain"
)

func TestPDFRenderer_Render(t *testing.T) {
	trip := &domain.CompletedTrip{
		Trip: domain.Trip{
			ID:            42,
			DriverID:      1,
			PassengerID:   2,
			StartLocation: domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312},
			EndLocation:   domain.Coordinate{Latitude: 18.4500, Longitude: -69.9700},
			StartDate:     time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2024, 4, 5, 10, 30, 0, 0, time.UTC),
			Price:         350.50,
			PriceCurrency: domain.PriceCurrency,
		},
		DriverGivenName:    "Pedro",
		PassengerGivenName: "Maria",
		DistanceKm:         5.8,
	}

	content, err := NewPDFRenderer().Render(trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(content) == 0 {
		t.Fatal("expected non-empty PDF output")
	}

	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", content[:4])
	}
}
