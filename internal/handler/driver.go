package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi24/internal/domain"
	"taxi24/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	GivenName  string  `json:"givenName"`
	FamilyName string  `json:"familyName"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID         int64   `json:"id"`
	GivenName  string  `json:"givenName"`
	FamilyName string  `json:"familyName"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// DriverWithDistanceResponse is a driver search record with its distance
// from the search origin.
type DriverWithDistanceResponse struct {
	DriverResponse
	DistanceKm float64 `json:"distanceKm"`
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:         d.ID,
		GivenName:  d.GivenName,
		FamilyName: d.FamilyName,
		Latitude:   d.Location.Latitude,
		Longitude:  d.Location.Longitude,
	}
}

// Register handles POST /v1/drivers
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), service.RegisterDriverRequest{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Location:   domain.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDriverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	drivers, total, err := h.driverService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		records = append(records, toDriverResponse(d))
	}

	c.JSON(http.StatusOK, PaginatedResponse{Records: records, TotalRecords: total})
}

// GetByID handles GET /v1/drivers/:id
func (h *DriverHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDriverResponse(driver))
}

// Availability handles GET /v1/drivers/:id/availability
func (h *DriverHandler) Availability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	available, err := h.driverService.IsAvailable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"driverId": id, "available": available})
}

// Search handles GET /v1/drivers/search
// Canonical rich search: distance-ordered, optional radius, optional
// availability filter, optional pagination.
func (h *DriverHandler) Search(c *gin.Context) {
	lat, ok := parseFloatQuery(c, "latitude")
	if !ok {
		return
	}
	lng, ok := parseFloatQuery(c, "longitude")
	if !ok {
		return
	}

	var maxDistanceKm float64
	if c.Query("distance") != "" {
		if maxDistanceKm, ok = parseFloatQuery(c, "distance"); !ok {
			return
		}
	}

	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.driverService.Search(c.Request.Context(), service.SearchRequest{
		Origin:        domain.Coordinate{Latitude: lat, Longitude: lng},
		MaxDistanceKm: maxDistanceKm,
		AvailableOnly: c.Query("availableOnly") == "true",
		Page:          page,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]DriverWithDistanceResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, DriverWithDistanceResponse{
			DriverResponse: toDriverResponse(&rec.Driver),
			DistanceKm:     rec.DistanceKm,
		})
	}

	c.JSON(http.StatusOK, PaginatedResponse{Records: records, TotalRecords: result.TotalRecords})
}

// Nearby handles GET /v1/drivers/nearby
// Deprecated narrower search form kept for API compatibility.
func (h *DriverHandler) Nearby(c *gin.Context) {
	lat, ok := parseFloatQuery(c, "latitude")
	if !ok {
		return
	}
	lng, ok := parseFloatQuery(c, "longitude")
	if !ok {
		return
	}
	distanceKm, ok := parseFloatQuery(c, "distance")
	if !ok {
		return
	}

	drivers, err := h.driverService.FindWithinDistance(c.Request.Context(), distanceKm,
		domain.Coordinate{Latitude: lat, Longitude: lng})
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		records = append(records, toDriverResponse(d))
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
