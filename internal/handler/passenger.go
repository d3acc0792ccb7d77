package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi24/internal/domain"
	"taxi24/internal/service"
)

// PassengerHandler handles HTTP requests for passengers.
type PassengerHandler struct {
	passengerService *service.PassengerService
}

// NewPassengerHandler creates a new PassengerHandler.
func NewPassengerHandler(passengerService *service.PassengerService) *PassengerHandler {
	return &PassengerHandler{passengerService: passengerService}
}

// RegisterPassengerRequest is the HTTP request body for passenger registration.
type RegisterPassengerRequest struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// PassengerResponse is the HTTP response for passenger data.
type PassengerResponse struct {
	ID         int64  `json:"id"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

func toPassengerResponse(p *domain.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:         p.ID,
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
	}
}

// Register handles POST /v1/passengers
func (h *PassengerHandler) Register(c *gin.Context) {
	var req RegisterPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	passenger, err := h.passengerService.Register(c.Request.Context(), service.RegisterPassengerRequest{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPassengerResponse(passenger))
}

// GetAll handles GET /v1/passengers
func (h *PassengerHandler) GetAll(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	passengers, total, err := h.passengerService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		records = append(records, toPassengerResponse(p))
	}

	c.JSON(http.StatusOK, PaginatedResponse{Records: records, TotalRecords: total})
}

// GetByID handles GET /v1/passengers/:id
func (h *PassengerHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	passenger, err := h.passengerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}
