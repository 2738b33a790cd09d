package domain

import "github.com/shopspring/decimal"

type BookingStats struct {
	TotalBookings     int                        `json:"totalBookings"`
	ConfirmedBookings int                        `json:"confirmedBookings"`
	CancelledBookings int                        `json:"cancelledBookings"`
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	RevenueBySport    map[string]decimal.Decimal `json:"revenueBySport"`
	BookingsByVenue   map[string]int             `json:"bookingsByVenue"`
}
