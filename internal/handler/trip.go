package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxi24/internal/domain"
	"taxi24/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	DriverID       int64   `json:"driverId"`
	PassengerID    int64   `json:"passengerId"`
	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`
	EndLatitude    float64 `json:"endLatitude"`
	EndLongitude   float64 `json:"endLongitude"`
	Price          float64 `json:"price"`
}

// TripResponse is the HTTP response for trip data.
type TripResponse struct {
	ID             int64   `json:"id"`
	DriverID       int64   `json:"driverId"`
	PassengerID    int64   `json:"passengerId"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate,omitempty"`
	IsActive       bool    `json:"isActive"`
	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`
	EndLatitude    float64 `json:"endLatitude"`
	EndLongitude   float64 `json:"endLongitude"`
	Price          float64 `json:"price"`
	PriceCurrency  string  `json:"priceCurrency"`
}

// CompletedTripResponse is a trip enriched with party names and the derived
// endpoint distance.
type CompletedTripResponse struct {
	TripResponse
	DriverGivenName    string  `json:"driverGivenName"`
	PassengerGivenName string  `json:"passengerGivenName"`
	DistanceKm         float64 `json:"distanceKm"`
}

func toTripResponse(t *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:             t.ID,
		DriverID:       t.DriverID,
		PassengerID:    t.PassengerID,
		StartDate:      t.StartDate.Format(time.RFC3339),
		IsActive:       t.IsActive,
		StartLatitude:  t.StartLocation.Latitude,
		StartLongitude: t.StartLocation.Longitude,
		EndLatitude:    t.EndLocation.Latitude,
		EndLongitude:   t.EndLocation.Longitude,
		Price:          t.Price,
		PriceCurrency:  t.PriceCurrency,
	}

	if !t.EndDate.IsZero() {
		resp.EndDate = t.EndDate.Format(time.RFC3339)
	}

	return resp
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), service.CreateTripRequest{
		DriverID:      req.DriverID,
		PassengerID:   req.PassengerID,
		StartLocation: domain.Coordinate{Latitude: req.StartLatitude, Longitude: req.StartLongitude},
		EndLocation:   domain.Coordinate{Latitude: req.EndLatitude, Longitude: req.EndLongitude},
		Price:         req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTripResponse(trip))
}

// Complete handles POST /v1/trips/:id/complete
func (h *TripHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	completed, err := h.tripService.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompletedTripResponse{
		TripResponse:       toTripResponse(&completed.Trip),
		DriverGivenName:    completed.DriverGivenName,
		PassengerGivenName: completed.PassengerGivenName,
		DistanceKm:         completed.DistanceKm,
	})
}

// GetActive handles GET /v1/trips/active
func (h *TripHandler) GetActive(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	trips, total, err := h.tripService.ListActive(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		records = append(records, toTripResponse(t))
	}

	c.JSON(http.StatusOK, PaginatedResponse{Records: records, TotalRecords: total})
}

// GetBill handles GET /v1/trips/completed/:id/bill
func (h *TripHandler) GetBill(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	bill, err := h.tripService.GetBill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bill.FileName))
	c.Data(http.StatusOK, "application/pdf", bill.Content)
}
