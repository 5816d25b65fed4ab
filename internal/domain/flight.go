package domain

import "time"

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "active"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusCompleted FlightStatus = "completed"
)

type Flight struct {
	ID             int64
	AirlineName    string
	AirlineCode    string
	FlightNumber   string
	DepartureCity  string
	ArrivalCity    string
	DepartureDate  time.Time
	DepartureTime  time.Time
	ArrivalTime    time.Time
	BasePriceCents int64
	TotalSeats     int
	AvailableSeats int
	Status         FlightStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Offer is a priced, search-time view of a flight for a specific
// passenger count and fare class.
type Offer struct {
	Flight          Flight
	FareClass       FareClass
	Passengers      int
	UnitPriceCents  int64
	TotalPriceCents int64
}
