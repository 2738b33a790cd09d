package stats

import (
	"context"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/repository"
	"github.com/shopspring/decimal"
)

type StatsUseCase interface {
	ComputeStats(ctx context.Context) (*domain.BookingStats, error)
}

type StatsService struct {
	bookings repository.BookingRepository
}

func NewStatsService(bookings repository.BookingRepository) *StatsService {
	return &StatsService{bookings: bookings}
}

// ComputeStats aggregates over every stored booking. Only confirmed bookings
// count towards revenue; sums are exact decimals.
func (s *StatsService) ComputeStats(ctx context.Context) (*domain.BookingStats, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.BookingStats{
		TotalBookings:   len(all),
		TotalRevenue:    decimal.Zero,
		RevenueBySport:  make(map[string]decimal.Decimal),
		BookingsByVenue: make(map[string]int),
	}
	for _, b := range all {
		switch b.Status {
		case domain.BookingStatusConfirmed:
			stats.ConfirmedBookings++
			stats.TotalRevenue = stats.TotalRevenue.Add(b.Price)
			stats.RevenueBySport[b.Sport] = stats.RevenueBySport[b.Sport].Add(b.Price)
			stats.BookingsByVenue[b.VenueID]++
		default:
			// Anything that is not confirmed has vacated its slot.
			stats.CancelledBookings++
		}
	}
	return stats, nil
}

var _ StatsUseCase = (*StatsService)(nil)
