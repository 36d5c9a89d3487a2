package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLocale is the fallback locale for every localized field.
// The store publishes Spanish first, with optional translations.
const DefaultLocale = "es"

// LocalizedString holds per-locale variants of a string
type LocalizedString map[string]string

// Get resolves the string for the requested locale, falling back to the
// default locale when the requested one is absent or empty.
func (s LocalizedString) Get(locale string) string {
	if v, ok := s[locale]; ok && v != "" {
		return v
	}
	return s[DefaultLocale]
}

// Product represents a catalog product with its purchasable variants
type Product struct {
	ID           int64
	Name         LocalizedString
	Description  LocalizedString
	Handle       LocalizedString
	Variants     []Variant
	Images       []Image
	Published    bool
	FreeShipping bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Variant is one purchasable configuration of a product
type Variant struct {
	ID               int64
	SKU              string
	Price            decimal.Decimal
	PromotionalPrice *decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	Stock            *int // nil means unmetered stock
	Options          []Option
}

// Option pairs an attribute dimension name with this variant's value for it.
// Built once at the ingestion boundary from the platform's parallel arrays,
// so core logic never matches attribute positions.
type Option struct {
	Name  LocalizedString
	Value LocalizedString
}

// Image is a product image reference
type Image struct {
	ID       int64
	Src      string
	Position int
}

// EffectivePrice returns the price actually charged: the promotional price
// when one is set, otherwise the base price.
func (v Variant) EffectivePrice() decimal.Decimal {
	if v.PromotionalPrice != nil {
		return *v.PromotionalPrice
	}
	return v.Price
}

// LowestPrice returns the minimum effective price across the product's
// variants. The boolean is false when the product has no variants.
func (p Product) LowestPrice() (decimal.Decimal, bool) {
	if len(p.Variants) == 0 {
		return decimal.Zero, false
	}
	lowest := p.Variants[0].EffectivePrice()
	for _, v := range p.Variants[1:] {
		if price := v.EffectivePrice(); price.LessThan(lowest) {
			lowest = price
		}
	}
	return lowest, true
}
