package domain

// SortMode represents the ordering applied to a product listing
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// IsValid checks if the sort mode is one of the supported values
func (m SortMode) IsValid() bool {
	switch m {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	default:
		return false
	}
}
