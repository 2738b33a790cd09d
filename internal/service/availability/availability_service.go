package availability

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/repository"
)

type AvailabilityUseCase interface {
	BookedSlots(ctx context.Context, venueID, date string) ([]string, error)
	Availability(ctx context.Context, venueID, date string) ([]domain.SlotAvailability, error)
}

// VenueLookup resolves catalog venues; slot ordering and pricing come from it.
type VenueLookup interface {
	Venue(id string) (*domain.Venue, bool)
}

type AvailabilityService struct {
	bookings repository.BookingRepository
	venues   VenueLookup
}

func NewAvailabilityService(bookings repository.BookingRepository, venues VenueLookup) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, venues: venues}
}

// BookedSlots lists the time slots held by confirmed bookings for the venue on
// date. The result is a set: a slot appears once however many bookings hold it.
func (s *AvailabilityService) BookedSlots(ctx context.Context, venueID, date string) ([]string, error) {
	if strings.TrimSpace(date) == "" {
		return nil, domain.ValidationError("date parameter is required")
	}

	taken, err := s.bookedSet(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(taken))
	if venue, ok := s.lookup(venueID); ok {
		for _, slot := range venue.Availability {
			if _, booked := taken[slot]; booked {
				slots = append(slots, slot)
				delete(taken, slot)
			}
		}
	}
	// Slots unknown to the catalog go last, in lexical order.
	rest := make([]string, 0, len(taken))
	for slot := range taken {
		rest = append(rest, slot)
	}
	sort.Strings(rest)
	return append(slots, rest...), nil
}

// Availability describes every fixed slot of a catalog venue on date.
func (s *AvailabilityService) Availability(ctx context.Context, venueID, date string) ([]domain.SlotAvailability, error) {
	if strings.TrimSpace(date) == "" {
		return nil, domain.ValidationError("date parameter is required")
	}
	venue, ok := s.lookup(venueID)
	if !ok {
		return nil, fmt.Errorf("venue %s: %w", venueID, domain.ErrNotFound)
	}

	taken, err := s.bookedSet(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SlotAvailability, 0, len(venue.Availability))
	for _, slot := range venue.Availability {
		_, booked := taken[slot]
		out = append(out, domain.SlotAvailability{
			TimeSlot: slot,
			Booked:   booked,
			Peak:     venue.IsPeak(slot),
			Price:    venue.HourlyRate(slot),
		})
	}
	return out, nil
}

func (s *AvailabilityService) bookedSet(ctx context.Context, venueID, date string) (map[string]struct{}, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{})
	for _, b := range all {
		if b.VenueID == venueID && b.Date == date && b.IsConfirmed() {
			taken[b.TimeSlot] = struct{}{}
		}
	}
	return taken, nil
}

func (s *AvailabilityService) lookup(venueID string) (*domain.Venue, bool) {
	if s.venues == nil {
		return nil, false
	}
	return s.venues.Venue(venueID)
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
