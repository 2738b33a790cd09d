package domain

import "github.com/shopspring/decimal"

type Sport struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Icon            string `json:"icon" yaml:"icon"`
	Description     string `json:"description" yaml:"description"`
	PopularityScore int    `json:"popularityScore" yaml:"popularity_score"`
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

type Venue struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Sport        string          `json:"sport" yaml:"sport"`
	Location     string          `json:"location" yaml:"location"`
	Address      string          `json:"address" yaml:"address"`
	Rating       float64         `json:"rating" yaml:"rating"`
	Reviews      int             `json:"reviews" yaml:"reviews"`
	PricePerHour decimal.Decimal `json:"pricePerHour" yaml:"-"`
	OffPeakPrice decimal.Decimal `json:"offPeakPrice" yaml:"-"`
	Description  string          `json:"description" yaml:"description"`
	Amenities    []string        `json:"amenities" yaml:"amenities"`
	Indoor       bool            `json:"indoor" yaml:"indoor"`
	Coordinates  Coordinates     `json:"coordinates" yaml:"coordinates"`
	Availability []string        `json:"availability" yaml:"availability"`
	PeakHours    []string        `json:"peakHours" yaml:"peak_hours"`
}

func (v *Venue) HasSlot(slot string) bool {
	for _, s := range v.Availability {
		if s == slot {
			return true
		}
	}
	return false
}

func (v *Venue) IsPeak(slot string) bool {
	for _, s := range v.PeakHours {
		if s == slot {
			return true
		}
	}
	return false
}

// HourlyRate is the price of one slot at this venue.
func (v *Venue) HourlyRate(slot string) decimal.Decimal {
	if v.IsPeak(slot) {
		return v.PricePerHour
	}
	return v.OffPeakPrice
}

// SlotAvailability describes one of a venue's fixed slots on a given date.
type SlotAvailability struct {
	TimeSlot string          `json:"timeSlot"`
	Booked   bool            `json:"booked"`
	Peak     bool            `json:"peak"`
	Price    decimal.Decimal `json:"price"`
}

// Quote is the price breakdown shown before payment.
type Quote struct {
	VenueID   string          `json:"venueId"`
	TimeSlot  string          `json:"timeSlot"`
	Peak      bool            `json:"peak"`
	PromoCode *string         `json:"promoCode"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}
