package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lassenware/storefront-api/internal/domain"
)

// FilterSpec describes a product-listing selection. Absent fields mean
// "unconstrained", never "matches nothing".
type FilterSpec struct {
	Query      string
	Sort       domain.SortMode
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Attributes map[string][]string
	Page       int
}

// HasActiveFilters reports whether the spec narrows the listing at all
// beyond the default sort.
func (s FilterSpec) HasActiveFilters() bool {
	if s.Query != "" || s.MinPrice != nil || s.MaxPrice != nil {
		return true
	}
	if s.Sort != "" && s.Sort != domain.SortNewest {
		return true
	}
	for _, values := range s.Attributes {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// FilterProducts returns the subset of products matching every constraint in
// the spec, preserving input order. A product is retained when the search
// query appears in its localized name or description, at least one variant's
// effective price lies within the price bounds, and (when attribute
// constraints are present) a single variant satisfies every constrained
// dimension jointly. Products with no variants never match the price check
// and are excluded.
func FilterProducts(products []domain.Product, spec FilterSpec, locale string) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	filtered := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if query != "" && !matchesQuery(product, query, locale) {
			continue
		}
		if !matchesPriceRange(product, spec.MinPrice, spec.MaxPrice) {
			continue
		}
		if !matchesAttributes(product, spec.Attributes, locale) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

func matchesQuery(product domain.Product, query, locale string) bool {
	name := strings.ToLower(product.Name.Get(locale))
	description := strings.ToLower(product.Description.Get(locale))
	return strings.Contains(name, query) || strings.Contains(description, query)
}

// matchesPriceRange is an "any variant" check: one variant inside the bounds
// is enough. Zero variants means no price to check, so the product fails.
func matchesPriceRange(product domain.Product, min, max *decimal.Decimal) bool {
	for _, variant := range product.Variants {
		price := variant.EffectivePrice()
		if min != nil && price.LessThan(*min) {
			continue
		}
		if max != nil && price.GreaterThan(*max) {
			continue
		}
		return true
	}
	return false
}

// matchesAttributes requires at least one variant whose value in every
// constrained dimension is accepted. Each constraint matching on a different
// variant is not enough.
func matchesAttributes(product domain.Product, constraints map[string][]string, locale string) bool {
	active := false
	for _, values := range constraints {
		if len(values) > 0 {
			active = true
			break
		}
	}
	if !active {
		return true
	}

	for _, variant := range product.Variants {
		if variantMatchesAll(variant, constraints, locale) {
			return true
		}
	}
	return false
}

func variantMatchesAll(variant domain.Variant, constraints map[string][]string, locale string) bool {
	byName := make(map[string]string, len(variant.Options))
	for _, opt := range variant.Options {
		byName[opt.Name.Get(locale)] = opt.Value.Get(locale)
	}

	for name, accepted := range constraints {
		if len(accepted) == 0 {
			continue
		}
		value, ok := byName[name]
		if !ok {
			return false
		}
		if !containsString(accepted, value) {
			return false
		}
	}
	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// SortProducts returns a reordered copy of the collection; the input is not
// mutated. Sorting is stable, so products that compare equal keep their
// relative input order. Price modes order by each product's lowest variant
// effective price; products with no variants sort as infinitely expensive.
func SortProducts(products []domain.Product, mode domain.SortMode) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch mode {
	case domain.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return lowestPriceLess(sorted[i], sorted[j])
		})
	case domain.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return lowestPriceLess(sorted[j], sorted[i])
		})
	default: // newest
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

func lowestPriceLess(a, b domain.Product) bool {
	priceA, okA := a.LowestPrice()
	priceB, okB := b.LowestPrice()
	if !okA {
		return false
	}
	if !okB {
		return true
	}
	return priceA.LessThan(priceB)
}
