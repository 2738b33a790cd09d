package catalog

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/sporthub/config"
	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/shopspring/decimal"
)

// Pricing turns a venue slot into a payable amount: the hourly rate for the
// slot, less the promo discount, plus tax on the discounted amount.
type Pricing struct {
	tax      decimal.Decimal
	discount decimal.Decimal
	codes    map[string]struct{}
}

func NewPricing(cfg config.PricingConfig) (*Pricing, error) {
	tax, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("pricing.tax_rate: %w", err)
	}
	discount, err := decimal.NewFromString(cfg.PromoDiscount)
	if err != nil {
		return nil, fmt.Errorf("pricing.promo_discount: %w", err)
	}
	if tax.IsNegative() || discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("pricing: rates out of range (tax %s, discount %s)", tax, discount)
	}
	codes := make(map[string]struct{}, len(cfg.PromoCodes))
	for _, c := range cfg.PromoCodes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes[c] = struct{}{}
		}
	}
	return &Pricing{tax: tax, discount: discount, codes: codes}, nil
}

// ValidatePromo normalises code to upper case and reports whether it is known.
func (p *Pricing) ValidatePromo(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	_, ok := p.codes[code]
	return code, ok
}

func (p *Pricing) Quote(venue *domain.Venue, timeSlot, promoCode string) (*domain.Quote, error) {
	if !venue.HasSlot(timeSlot) {
		return nil, domain.ValidationError(fmt.Sprintf("venue %s has no %q slot", venue.ID, timeSlot))
	}

	q := &domain.Quote{
		VenueID:  venue.ID,
		TimeSlot: timeSlot,
		Peak:     venue.IsPeak(timeSlot),
		Subtotal: venue.HourlyRate(timeSlot),
		Discount: decimal.Zero,
	}

	if strings.TrimSpace(promoCode) != "" {
		code, ok := p.ValidatePromo(promoCode)
		if !ok {
			return nil, domain.ValidationError("invalid promo code")
		}
		q.PromoCode = &code
		q.Discount = q.Subtotal.Mul(p.discount).Round(2)
	}

	taxable := q.Subtotal.Sub(q.Discount)
	q.Tax = taxable.Mul(p.tax).Round(2)
	q.Total = taxable.Add(q.Tax).Round(2)
	return q, nil
}
