package tests

import (
	"context"
	"errors"
	"testing"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
	"taxi24/internal/service"
)

func TestPassengerRegisterAndGet(t *testing.T) {
	svc := service.NewPassengerService(NewMockPassengerRepository())

	passenger, err := svc.Register(context.Background(), service.RegisterPassengerRequest{
		GivenName:  "Pedro",
		FamilyName: "Santos",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if passenger.ID == 0 {
		t.Error("expected passenger ID to be assigned")
	}

	got, err := svc.Get(context.Background(), passenger.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.GivenName != "Pedro" || got.FamilyName != "Santos" {
		t.Errorf("unexpected passenger %+v", got)
	}
}

func TestPassengerRegisterValidation(t *testing.T) {
	svc := service.NewPassengerService(NewMockPassengerRepository())

	if _, err := svc.Register(context.Background(), service.RegisterPassengerRequest{FamilyName: "Santos"}); !errors.Is(err, service.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName for missing given name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), service.RegisterPassengerRequest{GivenName: "Pedro"}); !errors.Is(err, service.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName for missing family name, got %v", err)
	}
}

func TestPassengerGetErrors(t *testing.T) {
	svc := service.NewPassengerService(NewMockPassengerRepository())

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, service.ErrInvalidPassengerID) {
		t.Errorf("expected ErrInvalidPassengerID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 7); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPassengerListPagination(t *testing.T) {
	repo := NewMockPassengerRepository()
	svc := service.NewPassengerService(repo)

	repo.AddPassenger(&domain.Passenger{ID: 1, GivenName: "Ana", FamilyName: "Diaz"})
	repo.AddPassenger(&domain.Passenger{ID: 2, GivenName: "Luis", FamilyName: "Mota"})
	repo.AddPassenger(&domain.Passenger{ID: 3, GivenName: "Rosa", FamilyName: "Cruz"})

	passengers, total, err := svc.List(context.Background(), repository.PageRequest{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected totalRecords 3, got %d", total)
	}
	if len(passengers) != 2 {
		t.Fatalf("expected 2 passengers on page 1, got %d", len(passengers))
	}
	if passengers[0].ID != 1 || passengers[1].ID != 2 {
		t.Errorf("unexpected page order: %d, %d", passengers[0].ID, passengers[1].ID)
	}

	if _, _, err := svc.List(context.Background(), repository.PageRequest{Page: 1, PerPage: -5}); !errors.Is(err, service.ErrInvalidPagination) {
		t.Errorf("expected ErrInvalidPagination, got %v", err)
	}
}
