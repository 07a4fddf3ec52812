package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/internal/kafka"
)

// Sender delivers booking notifications. The delivery itself is logged only;
// wiring an SMTP provider goes here.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification email",
		zap.String("to", event.CustomerEmail),
		zap.String("type", event.Type),
		zap.String("booking_id", event.BookingID),
		zap.String("status", event.Status),
	)
	return nil
}
