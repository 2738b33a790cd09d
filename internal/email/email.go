package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notices. Delivery is simulated by logging.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	if event.UserID == "" || event.UserID == domain.GuestID {
		s.log.WithField("type", event.Type).Debug("no recipient for guest event")
		return nil
	}
	subject, body, ok := Render(event)
	if !ok {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":      event.UserID,
		"subject": subject,
	}).Info(body)
	return nil
}

// Render builds the subject and body for event; ok is false for event types
// nobody is notified about.
func Render(event kafka.Event) (subject, body string, ok bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Booking confirmed",
			fmt.Sprintf("Your booking %s at %s on %s, %s is confirmed.", event.BookingID, event.VenueName, event.Date, event.TimeSlot),
			true
	case kafka.EventBookingCancelled:
		return "Booking cancelled",
			fmt.Sprintf("Your booking %s at %s on %s, %s was cancelled.", event.BookingID, event.VenueName, event.Date, event.TimeSlot),
			true
	default:
		return "", "", false
	}
}
