package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CanTransitionTo reports whether the status machine allows moving from s
// to target. Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled
	default:
		return false
	}
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

type Booking struct {
	ID               int64
	UserID           int64
	FlightID         int64
	Reference        string
	PassengerName    string
	PassengerEmail   string
	PassengerPhone   string
	Passengers       int
	FareClass        FareClass
	TotalAmountCents int64
	Status           BookingStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BookingDetail is a booking joined with the display fields of its flight
// and airline, used by the read paths.
type BookingDetail struct {
	Booking
	FlightNumber  string
	DepartureCity string
	ArrivalCity   string
	DepartureDate time.Time
	DepartureTime time.Time
	AirlineName   string
}

type BookingStats struct {
	Total     int64
	Pending   int64
	Confirmed int64
	Cancelled int64
}
