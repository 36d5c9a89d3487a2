package domain

import "github.com/shopspring/decimal"

// LineItem is one entry in a cart, keyed by variant ID. The unit price is a
// snapshot taken when the item was added; catalog price changes after that
// point do not affect the cart total.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	VariantID int64           `json:"variant_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Options   string          `json:"options,omitempty"` // e.g. "Azul - M"
}

// Subtotal returns unit price times quantity for this line
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
