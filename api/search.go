package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/service/search"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service search.SearchUseCase
}

func NewSearchHandler(service search.SearchUseCase) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.search)
}

type searchRequest struct {
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
	Class         string `json:"class"`
	TripType      string `json:"trip_type"`
}

type offerResponse struct {
	FlightID        int64  `json:"flight_id"`
	AirlineName     string `json:"airline_name"`
	AirlineCode     string `json:"airline_code"`
	FlightNumber    string `json:"flight_number"`
	DepartureCity   string `json:"departure_city"`
	ArrivalCity     string `json:"arrival_city"`
	DepartureDate   string `json:"departure_date"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	AvailableSeats  int    `json:"available_seats"`
	Class           string `json:"class"`
	Passengers      int    `json:"passengers"`
	PriceCents      int64  `json:"price_cents"`
	Price           string `json:"price"`
	TotalPriceCents int64  `json:"total_price_cents"`
	TotalPrice      string `json:"total_price"`
}

type searchResponse struct {
	Success    bool            `json:"success"`
	Outbound   []offerResponse `json:"outbound"`
	Return     []offerResponse `json:"return"`
	TripType   string          `json:"trip_type"`
	Passengers int             `json:"passengers"`
	Class      string          `json:"class"`
	Message    string          `json:"message,omitempty"`
}

func (h *SearchHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Passengers == 0 {
		req.Passengers = 1
	}
	if req.TripType == "" {
		req.TripType = "one-way"
	}

	if req.DepartureCity == "" {
		fail(c, http.StatusBadRequest, "Departure city is required")
		return
	}
	if req.ArrivalCity == "" {
		fail(c, http.StatusBadRequest, "Arrival city is required")
		return
	}
	if req.Passengers < 1 {
		fail(c, http.StatusBadRequest, "Passenger count must be at least 1")
		return
	}
	date, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid departure date format")
		return
	}
	class, err := domain.ParseFareClass(req.Class)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid fare class")
		return
	}

	ctx := c.Request.Context()
	outbound := h.service.Search(ctx, search.Query{
		DepartureCity: req.DepartureCity,
		ArrivalCity:   req.ArrivalCity,
		DepartureDate: date,
		Passengers:    req.Passengers,
		Class:         class,
	})

	resp := searchResponse{
		Success:    true,
		Outbound:   toOfferResponses(outbound),
		Return:     []offerResponse{},
		TripType:   req.TripType,
		Passengers: req.Passengers,
		Class:      string(class),
	}

	if req.TripType == "round-trip" && req.ReturnDate != "" {
		returnDate, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid return date format")
			return
		}
		returnOffers := h.service.Search(ctx, search.Query{
			DepartureCity: req.ArrivalCity,
			ArrivalCity:   req.DepartureCity,
			DepartureDate: returnDate,
			Passengers:    req.Passengers,
			Class:         class,
		})
		resp.Return = toOfferResponses(returnOffers)
	}

	if len(resp.Outbound) == 0 {
		resp.Message = "No flights found for the selected criteria. Try different cities or dates."
	}

	c.JSON(http.StatusOK, resp)
}

func toOfferResponses(offers []domain.Offer) []offerResponse {
	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, offerResponse{
			FlightID:        o.Flight.ID,
			AirlineName:     o.Flight.AirlineName,
			AirlineCode:     o.Flight.AirlineCode,
			FlightNumber:    o.Flight.FlightNumber,
			DepartureCity:   o.Flight.DepartureCity,
			ArrivalCity:     o.Flight.ArrivalCity,
			DepartureDate:   o.Flight.DepartureDate.Format("2006-01-02"),
			DepartureTime:   o.Flight.DepartureTime.Format(time.RFC3339),
			ArrivalTime:     o.Flight.ArrivalTime.Format(time.RFC3339),
			AvailableSeats:  o.Flight.AvailableSeats,
			Class:           o.FareClass.Label(),
			Passengers:      o.Passengers,
			PriceCents:      o.UnitPriceCents,
			Price:           domain.FormatCents(o.UnitPriceCents),
			TotalPriceCents: o.TotalPriceCents,
			TotalPrice:      domain.FormatCents(o.TotalPriceCents),
		})
	}
	return out
}
