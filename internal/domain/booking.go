package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID        string          `json:"id"`
	Sport     string          `json:"sport"`
	VenueID   string          `json:"venueId"`
	VenueName string          `json:"venueName"`
	Date      string          `json:"date"`
	TimeSlot  string          `json:"timeSlot"`
	Price     decimal.Decimal `json:"price"`
	PromoCode *string         `json:"promoCode"`
	Owner     Owner           `json:"userId"`
	Status    BookingStatus   `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// SlotKey identifies the venue time slot a booking occupies.
type SlotKey struct {
	VenueID  string
	Date     string
	TimeSlot string
}

func (b *Booking) Slot() SlotKey {
	return SlotKey{VenueID: b.VenueID, Date: b.Date, TimeSlot: b.TimeSlot}
}
