package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/service/booking"
	"github.com/Domenick1991/flyflex/internal/service/bookingquery"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	queries bookingquery.QueryUseCase
}

func NewBookingHandler(service booking.BookingUseCase, queries bookingquery.QueryUseCase) *BookingHandler {
	return &BookingHandler{service: service, queries: queries}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.listMine)
	router.DELETE("/:id", h.cancel)
}

type createBookingRequest struct {
	FlightID        int64  `json:"flight_id"`
	PassengerName   string `json:"passenger_name"`
	PassengerEmail  string `json:"passenger_email"`
	PassengerPhone  string `json:"passenger_phone"`
	Passengers      int    `json:"passengers"`
	Class           string `json:"class"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

type createBookingResponse struct {
	Success          bool   `json:"success"`
	BookingReference string `json:"booking_reference,omitempty"`
	TotalAmountCents int64  `json:"total_amount_cents,omitempty"`
	TotalAmount      string `json:"total_amount,omitempty"`
	Message          string `json:"message"`
}

type bookingListItem struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"booking_reference"`
	FlightID         int64  `json:"flight_id"`
	FlightNumber     string `json:"flight_number"`
	AirlineName      string `json:"airline_name"`
	DepartureCity    string `json:"departure_city"`
	ArrivalCity      string `json:"arrival_city"`
	DepartureDate    string `json:"departure_date"`
	DepartureTime    string `json:"departure_time"`
	PassengerName    string `json:"passenger_name"`
	Passengers       int    `json:"passengers"`
	Class            string `json:"class"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	TotalAmount      string `json:"total_amount"`
	Status           string `json:"status"`
	BookedAt         string `json:"booked_at"`
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Please login to book flights")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}

	class, err := domain.ParseFareClass(req.Class)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid fare class")
		return
	}
	if req.Passengers == 0 {
		req.Passengers = 1
	}

	created, err := h.service.Reserve(c.Request.Context(), userID, booking.ReserveInput{
		FlightID:        req.FlightID,
		PassengerName:   req.PassengerName,
		PassengerEmail:  req.PassengerEmail,
		PassengerPhone:  req.PassengerPhone,
		Passengers:      req.Passengers,
		FareClass:       class,
		TotalPriceCents: req.TotalPriceCents,
	})
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createBookingResponse{
		Success:          true,
		BookingReference: created.Reference,
		TotalAmountCents: created.TotalAmountCents,
		TotalAmount:      domain.FormatCents(created.TotalAmountCents),
		Message:          "Booking successful",
	})
}

func (h *BookingHandler) listMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Please login to view bookings")
		return
	}

	details := h.queries.ListForUser(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": toBookingListItems(details)})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Please login to cancel bookings")
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Booking cancelled successfully"})
}

func toBookingListItems(details []domain.BookingDetail) []bookingListItem {
	items := make([]bookingListItem, 0, len(details))
	for _, d := range details {
		items = append(items, bookingListItem{
			ID:               d.ID,
			BookingReference: d.Reference,
			FlightID:         d.FlightID,
			FlightNumber:     d.FlightNumber,
			AirlineName:      d.AirlineName,
			DepartureCity:    d.DepartureCity,
			ArrivalCity:      d.ArrivalCity,
			DepartureDate:    d.DepartureDate.Format("2006-01-02"),
			DepartureTime:    d.DepartureTime.Format(time.RFC3339),
			PassengerName:    d.PassengerName,
			Passengers:       d.Passengers,
			Class:            d.FareClass.Label(),
			TotalAmountCents: d.TotalAmountCents,
			TotalAmount:      domain.FormatCents(d.TotalAmountCents),
			Status:           string(d.Status),
			BookedAt:         d.CreatedAt.Format(time.RFC3339),
		})
	}
	return items
}
