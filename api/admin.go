package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/repository"
	"github.com/Domenick1991/flyflex/internal/service/booking"
	"github.com/Domenick1991/flyflex/internal/service/bookingquery"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administrative surface: filtered booking
// listing, stats and status updates. All routes are gated on the admin
// flag supplied by the external auth layer.
type AdminHandler struct {
	service booking.BookingUseCase
	queries bookingquery.QueryUseCase
}

func NewAdminHandler(service booking.BookingUseCase, queries bookingquery.QueryUseCase) *AdminHandler {
	return &AdminHandler{service: service, queries: queries}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.Use(h.requireAdmin)
	router.GET("/bookings", h.list)
	router.GET("/bookings/stats", h.stats)
	router.PUT("/bookings/:id/status", h.updateStatus)
}

func (h *AdminHandler) requireAdmin(c *gin.Context) {
	if !isAdmin(c) {
		fail(c, http.StatusForbidden, "Admin access required")
		c.Abort()
		return
	}
	c.Next()
}

func (h *AdminHandler) list(c *gin.Context) {
	filter := repository.ListFilter{Airline: c.Query("airline")}

	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseBookingStatus(raw)
		if !ok {
			fail(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = status
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid date filter")
			return
		}
		filter.BookedOn = date
	}

	details := h.queries.ListAll(c.Request.Context(), filter)
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": toBookingListItems(details)})
}

func (h *AdminHandler) stats(c *gin.Context) {
	stats := h.queries.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"total_bookings":     stats.Total,
		"pending_bookings":   stats.Pending,
		"confirmed_bookings": stats.Confirmed,
		"cancelled_bookings": stats.Cancelled,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) updateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	status, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	if _, err := h.service.UpdateStatus(c.Request.Context(), bookingID, status); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Status updated successfully"})
}
