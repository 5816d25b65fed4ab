package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/kafka"
	"github.com/Domenick1991/flyflex/internal/repository"
)

type BookingUseCase interface {
	Reserve(ctx context.Context, userID int64, input ReserveInput) (*domain.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
	Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}

type ReferenceGenerator interface {
	Generate() string
}

// FlightGetter is the read side of the flight inventory the ledger needs
// for pricing a reservation.
type FlightGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReserveInput struct {
	FlightID       int64
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	Passengers     int
	FareClass      domain.FareClass

	// TotalPriceCents is the amount the caller saw when booking. Zero means
	// not declared; a non-zero value must match the fare computed from the
	// stored base price.
	TotalPriceCents int64
}

type BookingService struct {
	bookings    repository.BookingRepository
	flights     FlightGetter
	refs        ReferenceGenerator
	producer    Producer
	eventsTopic string
	refAttempts int
}

type BookingServiceOption func(*BookingService)

func WithReferenceAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.refAttempts = n
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights FlightGetter,
	refs ReferenceGenerator,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		flights:     flights,
		refs:        refs,
		producer:    producer,
		eventsTopic: eventsTopic,
		refAttempts: 5,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Reserve prices the booking from the flight's base fare, then decrements
// the seat counter and creates a pending booking in one store-level
// transaction. A reference collision rolls the whole attempt back and
// retries with a fresh token, so capacity is never lost to a failed insert.
func (s *BookingService) Reserve(ctx context.Context, userID int64, input ReserveInput) (*domain.Booking, error) {
	if err := validateReserve(userID, input); err != nil {
		return nil, err
	}

	// The amount charged is never taken from the caller: it is derived from
	// the stored base fare and the requested class. A declared total that
	// disagrees means the caller booked against a stale price.
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInsufficientSeats
		}
		return nil, err
	}
	unit := input.FareClass.UnitPriceCents(flight.BasePriceCents)
	total := unit * int64(input.Passengers)
	if input.TotalPriceCents != 0 && input.TotalPriceCents != total {
		return nil, domain.NewValidationError("total_price", "does not match the current fare")
	}

	b := &domain.Booking{
		UserID:           userID,
		FlightID:         input.FlightID,
		PassengerName:    strings.TrimSpace(input.PassengerName),
		PassengerEmail:   strings.TrimSpace(input.PassengerEmail),
		PassengerPhone:   strings.TrimSpace(input.PassengerPhone),
		Passengers:       input.Passengers,
		FareClass:        input.FareClass,
		TotalAmountCents: total,
	}

	for attempt := 0; attempt < s.refAttempts; attempt++ {
		b.Reference = s.refs.Generate()
		err = s.bookings.CreateWithReservation(ctx, b)
		if errors.Is(err, domain.ErrDuplicateReference) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", b)
	return b, nil
}

// Cancel reverses a reservation exactly once. Repeating it on an already
// cancelled booking succeeds without crediting seats again.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, domain.NewValidationError("booking_id", "must be positive")
	}

	b, released, err := s.bookings.CancelWithRelease(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if released {
		s.publish(ctx, "booking_cancelled", b)
	}
	return b, nil
}

// Confirm is the administrative pending -> confirmed transition. Seats were
// committed at reservation time, so inventory is untouched.
func (s *BookingService) Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, domain.NewValidationError("booking_id", "must be positive")
	}

	b, err := s.bookings.Confirm(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_confirmed", b)
	return b, nil
}

// UpdateStatus is the thin administrative entry point: it routes to the
// ledger transition for the requested target rather than writing the
// status column directly.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	switch status {
	case domain.BookingStatusConfirmed:
		return s.Confirm(ctx, bookingID)
	case domain.BookingStatusCancelled:
		// Unscoped cancel: admins may cancel any booking.
		return s.Cancel(ctx, 0, bookingID)
	default:
		return nil, domain.NewValidationError("status", "must be confirmed or cancelled")
	}
}

func validateReserve(userID int64, input ReserveInput) error {
	if userID <= 0 {
		return domain.NewValidationError("user_id", "is required")
	}
	if input.FlightID <= 0 {
		return domain.NewValidationError("flight_id", "must be positive")
	}
	if input.Passengers < 1 {
		return domain.NewValidationError("passengers", "must be at least 1")
	}
	if strings.TrimSpace(input.PassengerName) == "" {
		return domain.NewValidationError("passenger_name", "is required")
	}
	if strings.TrimSpace(input.PassengerEmail) == "" {
		return domain.NewValidationError("passenger_email", "is required")
	}
	if _, err := domain.ParseFareClass(string(input.FareClass)); err != nil {
		return domain.NewValidationError("class", "must be economy, business or first")
	}
	if input.TotalPriceCents < 0 {
		return domain.NewValidationError("total_price", "must not be negative")
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  b.Reference,
		BookingID:  b.ID,
		FlightID:   b.FlightID,
		UserID:     b.UserID,
		Passengers: b.Passengers,
		Email:      b.PassengerEmail,
		Status:     string(b.Status),
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, b.Reference, event); err != nil {
		log.Printf("publish %s event for booking %s: %v", eventType, b.Reference, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
