package catalog

import (
	"context"
	"fmt"
	"strings"

	dataset "github.com/Domenick1991/sporthub/internal/catalog"
	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogUseCase interface {
	ListSports(ctx context.Context) ([]domain.Sport, error)
	ListVenues(ctx context.Context, sport string) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (*domain.Venue, error)
	Quote(ctx context.Context, venueID, timeSlot, promoCode string) (*domain.Quote, error)
	ValidatePromo(ctx context.Context, code string) (string, bool)
	DiscountRate() decimal.Decimal
}

type CatalogService struct {
	data  *dataset.Catalog
	rates *Pricing
}

func NewCatalogService(data *dataset.Catalog, rates *Pricing) *CatalogService {
	return &CatalogService{data: data, rates: rates}
}

func (s *CatalogService) ListSports(ctx context.Context) ([]domain.Sport, error) {
	return append([]domain.Sport(nil), s.data.Sports...), nil
}

// ListVenues returns every venue, or only those for sport when it is set.
func (s *CatalogService) ListVenues(ctx context.Context, sport string) ([]domain.Venue, error) {
	sport = strings.TrimSpace(sport)
	venues := make([]domain.Venue, 0, len(s.data.Venues))
	for _, v := range s.data.Venues {
		if sport == "" || strings.EqualFold(v.Sport, sport) {
			venues = append(venues, v)
		}
	}
	return venues, nil
}

func (s *CatalogService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	v, ok := s.data.Venue(id)
	if !ok {
		return nil, fmt.Errorf("venue %s: %w", id, domain.ErrNotFound)
	}
	out := *v
	return &out, nil
}

func (s *CatalogService) Quote(ctx context.Context, venueID, timeSlot, promoCode string) (*domain.Quote, error) {
	venue, ok := s.data.Venue(venueID)
	if !ok {
		return nil, fmt.Errorf("venue %s: %w", venueID, domain.ErrNotFound)
	}
	return s.rates.Quote(venue, timeSlot, promoCode)
}

func (s *CatalogService) ValidatePromo(ctx context.Context, code string) (string, bool) {
	return s.rates.ValidatePromo(code)
}

func (s *CatalogService) DiscountRate() decimal.Decimal {
	return s.rates.discount
}

// Venue satisfies availability.VenueLookup.
func (s *CatalogService) Venue(id string) (*domain.Venue, bool) {
	return s.data.Venue(id)
}

var _ CatalogUseCase = (*CatalogService)(nil)
