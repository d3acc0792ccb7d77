package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
	"taxi24/internal/service"
)

func newDriverService() (*service.DriverService, *MockDriverRepository, *MockTripRepository) {
	tripRepo := NewMockTripRepository()
	driverRepo := NewMockDriverRepository(tripRepo)
	return service.NewDriverService(driverRepo, tripRepo), driverRepo, tripRepo
}

func seedDriver(repo *MockDriverRepository, id int64, name string, lat, lng float64) {
	repo.AddDriver(&domain.Driver{
		ID:         id,
		GivenName:  name,
		FamilyName: "Perez",
		Location:   domain.Coordinate{Latitude: lat, Longitude: lng},
	})
}

func TestDriverRegister(t *testing.T) {
	svc, _, _ := newDriverService()

	driver, err := svc.Register(context.Background(), service.RegisterDriverRequest{
		GivenName:  "Juan",
		FamilyName: "Perez",
		Location:   domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if driver.ID == 0 {
		t.Error("expected driver ID to be assigned")
	}

	got, err := svc.Get(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.GivenName != "Juan" {
		t.Errorf("expected given name Juan, got %s", got.GivenName)
	}
}

func TestDriverRegisterValidation(t *testing.T) {
	svc, _, _ := newDriverService()

	testCases := []struct {
		name    string
		req     service.RegisterDriverRequest
		wantErr error
	}{
		{
			name: "missing given name",
			req: service.RegisterDriverRequest{
				FamilyName: "Perez",
				Location:   domain.Coordinate{Latitude: 18.5, Longitude: -69.9},
			},
			wantErr: service.ErrInvalidName,
		},
		{
			name: "missing family name",
			req: service.RegisterDriverRequest{
				GivenName: "Juan",
				Location:  domain.Coordinate{Latitude: 18.5, Longitude: -69.9},
			},
			wantErr: service.ErrInvalidName,
		},
		{
			name: "latitude out of range",
			req: service.RegisterDriverRequest{
				GivenName:  "Juan",
				FamilyName: "Perez",
				Location:   domain.Coordinate{Latitude: 91, Longitude: 0},
			},
			wantErr: service.ErrInvalidLocation,
		},
		{
			name: "longitude out of range",
			req: service.RegisterDriverRequest{
				GivenName:  "Juan",
				FamilyName: "Perez",
				Location:   domain.Coordinate{Latitude: 0, Longitude: -181},
			},
			wantErr: service.ErrInvalidLocation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSearchOrdersByDistanceAscending(t *testing.T) {
	svc, driverRepo, _ := newDriverService()

	// Seeded out of order; increasing offsets from the origin.
	seedDriver(driverRepo, 1, "Carlos", 18.60, -69.90)
	seedDriver(driverRepo, 2, "Ana", 18.49, -69.93)
	seedDriver(driverRepo, 3, "Maria", 18.52, -69.93)

	result, err := svc.Search(context.Background(), service.SearchRequest{
		Origin: domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 drivers, got %d", len(result.Records))
	}
	for i := 1; i < len(result.Records); i++ {
		if result.Records[i].DistanceKm < result.Records[i-1].DistanceKm {
			t.Errorf("distances not ascending at index %d: %f < %f",
				i, result.Records[i].DistanceKm, result.Records[i-1].DistanceKm)
		}
	}
	if result.Records[0].GivenName != "Ana" {
		t.Errorf("expected nearest driver Ana, got %s", result.Records[0].GivenName)
	}
	if result.Records[2].GivenName != "Carlos" {
		t.Errorf("expected farthest driver Carlos, got %s", result.Records[2].GivenName)
	}
}

func TestSearchMaxDistanceBoundary(t *testing.T) {
	svc, driverRepo, _ := newDriverService()

	// Within ~0.08km of the origin.
	seedDriver(driverRepo, 1, "Cerca", 1.2305, 4.5605)
	// Over a thousand kilometers away.
	seedDriver(driverRepo, 2, "Lejos", 10, 20)

	result, err := svc.Search(context.Background(), service.SearchRequest{
		Origin:        domain.Coordinate{Latitude: 1.23, Longitude: 4.56},
		MaxDistanceKm: 3,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if result.TotalRecords != 1 {
		t.Fatalf("expected 1 driver within 3km, got %d", result.TotalRecords)
	}
	if result.Records[0].GivenName != "Cerca" {
		t.Errorf("expected driver Cerca, got %s", result.Records[0].GivenName)
	}
	if result.Records[0].DistanceKm > 3 {
		t.Errorf("returned distance %f exceeds the 3km bound", result.Records[0].DistanceKm)
	}
}

func TestSearchAvailableOnly(t *testing.T) {
	svc, driverRepo, tripRepo := newDriverService()

	seedDriver(driverRepo, 1, "Libre", 18.49, -69.93)
	seedDriver(driverRepo, 2, "Ocupado", 18.49, -69.93)
	seedDriver(driverRepo, 3, "Liberado", 18.49, -69.93)

	// Driver 2 is on an active trip; driver 3 only has a completed one.
	tripRepo.AddTrip(&domain.Trip{ID: 1, DriverID: 2, PassengerID: 1, IsActive: true})
	tripRepo.AddTrip(&domain.Trip{ID: 2, DriverID: 3, PassengerID: 2, IsActive: false})

	result, err := svc.Search(context.Background(), service.SearchRequest{
		Origin:        domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312},
		AvailableOnly: true,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if result.TotalRecords != 2 {
		t.Fatalf("expected 2 available drivers, got %d", result.TotalRecords)
	}
	for _, d := range result.Records {
		if d.ID == 2 {
			t.Error("driver with an active trip must not appear in available-only results")
		}
	}
}

func TestSearchPagination(t *testing.T) {
	svc, driverRepo, _ := newDriverService()

	seedDriver(driverRepo, 1, "A", 18.49, -69.93)
	seedDriver(driverRepo, 2, "B", 18.50, -69.93)
	seedDriver(driverRepo, 3, "C", 18.51, -69.93)
	seedDriver(driverRepo, 4, "D", 18.52, -69.93)

	origin := domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312}

	first, err := svc.Search(context.Background(), service.SearchRequest{
		Origin: origin,
		Page:   repository.PageRequest{Page: 1, PerPage: 2},
	})
	if err != nil {
		t.Fatalf("Search page 1 failed: %v", err)
	}
	second, err := svc.Search(context.Background(), service.SearchRequest{
		Origin: origin,
		Page:   repository.PageRequest{Page: 2, PerPage: 2},
	})
	if err != nil {
		t.Fatalf("Search page 2 failed: %v", err)
	}

	if first.TotalRecords != 4 || second.TotalRecords != 4 {
		t.Errorf("expected totalRecords 4 on both pages, got %d and %d",
			first.TotalRecords, second.TotalRecords)
	}
	if len(first.Records) != 2 || len(second.Records) != 2 {
		t.Fatalf("expected 2 records per page, got %d and %d",
			len(first.Records), len(second.Records))
	}

	seen := make(map[int64]bool)
	for _, d := range append(first.Records, second.Records...) {
		if seen[d.ID] {
			t.Errorf("driver %d appears on both pages", d.ID)
		}
		seen[d.ID] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected the two pages to cover all 4 drivers, covered %d", len(seen))
	}
	if second.Records[0].DistanceKm < first.Records[1].DistanceKm {
		t.Error("page 2 must continue the ascending distance order of page 1")
	}

	// A valid page past the end is empty but still reports the true total.
	past, err := svc.Search(context.Background(), service.SearchRequest{
		Origin: origin,
		Page:   repository.PageRequest{Page: 3, PerPage: 2},
	})
	if err != nil {
		t.Fatalf("Search page 3 failed: %v", err)
	}
	if len(past.Records) != 0 {
		t.Errorf("expected no records past the end, got %d", len(past.Records))
	}
	if past.TotalRecords != 4 {
		t.Errorf("expected totalRecords 4 on an empty trailing page, got %d", past.TotalRecords)
	}
}

func TestSearchValidation(t *testing.T) {
	svc, _, _ := newDriverService()

	testCases := []struct {
		name    string
		req     service.SearchRequest
		wantErr error
	}{
		{
			name:    "invalid origin",
			req:     service.SearchRequest{Origin: domain.Coordinate{Latitude: 100, Longitude: 0}},
			wantErr: service.ErrInvalidLocation,
		},
		{
			name:    "non-finite origin",
			req:     service.SearchRequest{Origin: domain.Coordinate{Latitude: math.NaN(), Longitude: 0}},
			wantErr: service.ErrInvalidLocation,
		},
		{
			name: "negative distance",
			req: service.SearchRequest{
				Origin:        domain.Coordinate{Latitude: 18.5, Longitude: -69.9},
				MaxDistanceKm: -1,
			},
			wantErr: service.ErrInvalidDistance,
		},
		{
			name: "negative page",
			req: service.SearchRequest{
				Origin: domain.Coordinate{Latitude: 18.5, Longitude: -69.9},
				Page:   repository.PageRequest{Page: -1, PerPage: 10},
			},
			wantErr: service.ErrInvalidPagination,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFindWithinDistance(t *testing.T) {
	svc, driverRepo, tripRepo := newDriverService()

	seedDriver(driverRepo, 1, "Cerca", 18.49, -69.93)
	seedDriver(driverRepo, 2, "Lejos", 19.45, -70.69)

	// The legacy lookup ignores availability.
	tripRepo.AddTrip(&domain.Trip{ID: 1, DriverID: 1, PassengerID: 1, IsActive: true})

	drivers, err := svc.FindWithinDistance(context.Background(), 3, domain.Coordinate{Latitude: 18.4861, Longitude: -69.9312})
	if err != nil {
		t.Fatalf("FindWithinDistance failed: %v", err)
	}

	if len(drivers) != 1 {
		t.Fatalf("expected 1 driver within 3km, got %d", len(drivers))
	}
	if drivers[0].GivenName != "Cerca" {
		t.Errorf("expected driver Cerca, got %s", drivers[0].GivenName)
	}

	if _, err := svc.FindWithinDistance(context.Background(), 0, domain.Coordinate{}); !errors.Is(err, service.ErrInvalidDistance) {
		t.Errorf("expected ErrInvalidDistance for zero distance, got %v", err)
	}
}

func TestDriverAvailability(t *testing.T) {
	svc, driverRepo, tripRepo := newDriverService()

	seedDriver(driverRepo, 1, "Libre", 18.49, -69.93)
	seedDriver(driverRepo, 2, "Ocupado", 18.49, -69.93)
	seedDriver(driverRepo, 3, "Liberado", 18.49, -69.93)

	tripRepo.AddTrip(&domain.Trip{ID: 1, DriverID: 2, PassengerID: 1, IsActive: true})
	tripRepo.AddTrip(&domain.Trip{ID: 2, DriverID: 3, PassengerID: 2, IsActive: false})

	testCases := []struct {
		name     string
		driverID int64
		want     bool
	}{
		{"no trips at all", 1, true},
		{"active trip", 2, false},
		{"only completed trips", 3, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			available, err := svc.IsAvailable(context.Background(), tc.driverID)
			if err != nil {
				t.Fatalf("IsAvailable failed: %v", err)
			}
			if available != tc.want {
				t.Errorf("expected available=%v, got %v", tc.want, available)
			}
		})
	}

	if _, err := svc.IsAvailable(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown driver, got %v", err)
	}
}

func TestDriverListPagination(t *testing.T) {
	svc, driverRepo, _ := newDriverService()

	seedDriver(driverRepo, 1, "A", 18.49, -69.93)
	seedDriver(driverRepo, 2, "B", 18.50, -69.93)
	seedDriver(driverRepo, 3, "C", 18.51, -69.93)

	drivers, total, err := svc.List(context.Background(), repository.PageRequest{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected totalRecords 3, got %d", total)
	}
	if len(drivers) != 1 {
		t.Fatalf("expected 1 driver on the last page, got %d", len(drivers))
	}
	if drivers[0].ID != 3 {
		t.Errorf("expected driver 3 on the last page, got %d", drivers[0].ID)
	}

	// Absent pagination returns everything.
	all, total, err := svc.List(context.Background(), repository.PageRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || total != 3 {
		t.Errorf("expected all 3 drivers without pagination, got %d of %d", len(all), total)
	}

	// A valid page past the end is empty but still reports the true total.
	none, total, err := svc.List(context.Background(), repository.PageRequest{Page: 5, PerPage: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(none) != 0 || total != 3 {
		t.Errorf("expected 0 of 3 drivers past the end, got %d of %d", len(none), total)
	}
}
