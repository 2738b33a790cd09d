package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventReviewCreated    = "review_created"
)

type Event struct {
	Type       string           `json:"type"`
	BookingID  string           `json:"bookingId,omitempty"`
	ReviewID   string           `json:"reviewId,omitempty"`
	VenueID    string           `json:"venueId"`
	VenueName  string           `json:"venueName,omitempty"`
	Date       string           `json:"date,omitempty"`
	TimeSlot   string           `json:"timeSlot,omitempty"`
	UserID     string           `json:"userId"`
	Status     string           `json:"status,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Rating     int              `json:"rating,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Key partitions events so everything about one booking or review lands on
// the same partition.
func (e Event) Key() string {
	if e.BookingID != "" {
		return e.BookingID
	}
	return e.ReviewID
}
