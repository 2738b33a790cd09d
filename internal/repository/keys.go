package repository

import (
	"net/url"

	"github.com/Domenick1991/sporthub/internal/domain"
)

const (
	bookingKeyPrefix = "booking:"
	reviewKeyPrefix  = "review:"
)

func bookingKey(id string) string {
	return bookingKeyPrefix + id
}

func userBookingsKey(userID string) string {
	return "user_bookings:" + userID
}

func reviewKey(id string) string {
	return reviewKeyPrefix + id
}

func venueReviewsKey(venueID string) string {
	return "venue_reviews:" + venueID
}

// slotKey escapes each part; slot labels such as "6:00 PM" contain the
// separator themselves.
func slotKey(s domain.SlotKey) string {
	return "slot:" + url.QueryEscape(s.VenueID) + ":" + url.QueryEscape(s.Date) + ":" + url.QueryEscape(s.TimeSlot)
}
