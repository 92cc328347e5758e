package domain

import "github.com/shopspring/decimal"

// RentSource identifies where a property's rent estimate came from.
type RentSource string

const (
	// RentSourceProvider means the listing provider supplied the estimate.
	RentSourceProvider RentSource = "provider-estimate"
	// RentSourceFallback means the estimate was computed from the price.
	RentSourceFallback RentSource = "computed-fallback"
)

// Property is an immutable listing record supplied by the search layer.
// The engine never mutates it; user overrides (price, rent, notes) are the
// only fields written after import, and only by the owning caller.
type Property struct {
	ID            string           `json:"id"`
	Address       string           `json:"address"`
	Price         decimal.Decimal  `json:"price"`
	RentEstimate  decimal.Decimal  `json:"rentEstimate"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     float64          `json:"bathrooms"`
	Sqft          int              `json:"sqft"`
	URL           string           `json:"url,omitempty"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
	DaysOnMarket  *int             `json:"daysOnMarket,omitempty"`
	RentSource    RentSource       `json:"rentSource"`
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"`
	CustomRent    *decimal.Decimal `json:"customRent,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// EffectivePrice returns the manual price override when set, otherwise the listing price.
func (p Property) EffectivePrice() decimal.Decimal {
	if p.PriceOverride != nil && p.PriceOverride.GreaterThan(decimal.Zero) {
		return *p.PriceOverride
	}
	return p.Price
}

// EffectiveRent returns the user's custom rent when set, otherwise the estimate.
func (p Property) EffectiveRent() decimal.Decimal {
	if p.CustomRent != nil && p.CustomRent.GreaterThan(decimal.Zero) {
		return *p.CustomRent
	}
	return p.RentEstimate
}

// HasValidNumbers reports whether the property can contribute to aggregates:
// a positive effective price and a non-negative effective rent.
func (p Property) HasValidNumbers() bool {
	return p.EffectivePrice().GreaterThan(decimal.Zero) && !p.EffectiveRent().IsNegative()
}
