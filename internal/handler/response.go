package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxi24/internal/repository"
	"taxi24/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginatedResponse wraps a page of records with the total count of the
// unsliced result set.
type PaginatedResponse struct {
	Records      any `json:"records"`
	TotalRecords int `json:"totalRecords"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidPassengerID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidPrice):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrActiveTripExists),
		errors.Is(err, service.ErrTripAlreadyCompleted),
		errors.Is(err, service.ErrTripCreationContended):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// parsePage reads the optional page/perPage query parameters. An absent
// parameter stays zero; a malformed or sub-1 value fails validation.
func parsePage(c *gin.Context) (repository.PageRequest, error) {
	var page repository.PageRequest

	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return page, service.ErrInvalidPagination
		}
		page.Page = v
	}

	if raw := c.Query("perPage"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return page, service.ErrInvalidPagination
		}
		page.PerPage = v
	}

	return page, nil
}

// parseFloatQuery reads a required float query parameter.
func parseFloatQuery(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return v, true
}

// parseIDParam reads the numeric :id path parameter.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
