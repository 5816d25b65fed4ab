package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/gin-gonic/gin"
)

// Every mutating endpoint answers with this uniform shape; internal
// storage error text never reaches the client.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, statusResponse{Success: false, Message: message})
}

// failFromError maps the error taxonomy onto HTTP codes and safe messages.
func failFromError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, domain.ErrInsufficientSeats):
		fail(c, http.StatusConflict, "Flight not available or insufficient seats")
	case errors.Is(err, domain.ErrInvalidTransition):
		fail(c, http.StatusConflict, "Booking status cannot be changed")
	case errors.Is(err, domain.ErrIntegrityViolation):
		fail(c, http.StatusInternalServerError, "Inventory inconsistency detected")
	default:
		fail(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
