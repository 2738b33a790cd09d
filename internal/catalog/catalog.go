// Package catalog loads the read-only sports and venues dataset.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

type Catalog struct {
	Sports []domain.Sport
	Venues []domain.Venue

	venuesByID map[string]*domain.Venue
}

type venueRecord struct {
	domain.Venue `yaml:",inline"`
	PricePerHour string `yaml:"price_per_hour"`
	OffPeakPrice string `yaml:"off_peak_price"`
}

type document struct {
	Sports []domain.Sport `yaml:"sports"`
	Venues []venueRecord  `yaml:"venues"`
}

// Default returns the embedded dataset.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		Sports:     doc.Sports,
		Venues:     make([]domain.Venue, 0, len(doc.Venues)),
		venuesByID: make(map[string]*domain.Venue, len(doc.Venues)),
	}
	for _, rec := range doc.Venues {
		v := rec.Venue
		var err error
		if v.PricePerHour, err = decimal.NewFromString(rec.PricePerHour); err != nil {
			return nil, fmt.Errorf("venue %s: price_per_hour: %w", v.ID, err)
		}
		if v.OffPeakPrice, err = decimal.NewFromString(rec.OffPeakPrice); err != nil {
			return nil, fmt.Errorf("venue %s: off_peak_price: %w", v.ID, err)
		}
		if _, dup := c.venuesByID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate venue id %q", v.ID)
		}
		c.Venues = append(c.Venues, v)
		c.venuesByID[v.ID] = &c.Venues[len(c.Venues)-1]
	}
	return c, nil
}

// Venue looks up a venue by id. The returned pointer must not be modified.
func (c *Catalog) Venue(id string) (*domain.Venue, bool) {
	v, ok := c.venuesByID[id]
	return v, ok
}
