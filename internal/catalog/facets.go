package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lassenware/storefront-api/internal/domain"
)

// AvailableFilters is the set of filter dimensions derivable from a product
// collection: per-attribute value sets plus the observed price range. It is a
// projection recomputed whenever the collection changes, never a source of
// truth.
type AvailableFilters struct {
	Attributes    map[string][]string `json:"attributes"`
	PriceRange    PriceRange          `json:"price_range"`
	HasPriceRange bool                `json:"has_price_range"`
}

// PriceRange is the observed effective-price span, rounded outward to clean
// boundaries for range widgets.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// ExtractAvailableFilters scans a product collection and derives the filters
// that can be offered over it. Attribute names and values are resolved in the
// requested locale, falling back per-field to the default locale. Values are
// deduplicated and sorted lexicographically per dimension.
//
// A collection with no priced variants yields HasPriceRange=false and a
// {0, 0} range; callers should hide the range widget rather than render a
// placeholder span.
func ExtractAvailableFilters(products []domain.Product, locale string) AvailableFilters {
	valueSets := make(map[string]map[string]struct{})
	var minPrice, maxPrice decimal.Decimal
	priced := false

	for _, product := range products {
		for _, variant := range product.Variants {
			price := variant.EffectivePrice()
			if !priced || price.LessThan(minPrice) {
				minPrice = price
			}
			if !priced || price.GreaterThan(maxPrice) {
				maxPrice = price
			}
			priced = true

			for _, opt := range variant.Options {
				name := opt.Name.Get(locale)
				value := opt.Value.Get(locale)
				if name == "" || value == "" {
					continue
				}
				set, ok := valueSets[name]
				if !ok {
					set = make(map[string]struct{})
					valueSets[name] = set
				}
				set[value] = struct{}{}
			}
		}
	}

	attributes := make(map[string][]string, len(valueSets))
	for name, set := range valueSets {
		values := make([]string, 0, len(set))
		for value := range set {
			values = append(values, value)
		}
		sort.Strings(values)
		attributes[name] = values
	}

	filters := AvailableFilters{Attributes: attributes}
	if priced {
		filters.PriceRange = PriceRange{Min: minPrice.Floor(), Max: maxPrice.Ceil()}
		filters.HasPriceRange = true
	}
	return filters
}
