package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flyflex/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: booking %s is %s (flight %d, %d passengers)\n",
		event.Email, event.Reference, event.Status, event.FlightID, event.Passengers)
	return nil
}
