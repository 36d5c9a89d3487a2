package tiendanube

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lassenware/storefront-api/internal/domain"
)

// Raw payload shapes as the platform sends them. Localized fields are
// per-locale maps, prices are decimal strings, and variant attribute values
// are a parallel array matched by position against the product's attribute
// names. Conversion to domain types happens here, once, so nothing past this
// boundary matches positions or parses price strings.

type productPayload struct {
	ID           int64               `json:"id"`
	Name         map[string]string   `json:"name"`
	Description  map[string]string   `json:"description"`
	Handle       map[string]string   `json:"handle"`
	Attributes   []map[string]string `json:"attributes"`
	Variants     []variantPayload    `json:"variants"`
	Images       []imagePayload      `json:"images"`
	Published    bool                `json:"published"`
	FreeShipping bool                `json:"free_shipping"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type variantPayload struct {
	ID               int64               `json:"id"`
	SKU              *string             `json:"sku"`
	Price            string              `json:"price"`
	PromotionalPrice *string             `json:"promotional_price"`
	CompareAtPrice   *string             `json:"compare_at_price"`
	Stock            *int                `json:"stock"`
	Values           []map[string]string `json:"values"`
}

type imagePayload struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position"`
}

func (p productPayload) toDomain() domain.Product {
	product := domain.Product{
		ID:           p.ID,
		Name:         domain.LocalizedString(p.Name),
		Description:  domain.LocalizedString(p.Description),
		Handle:       domain.LocalizedString(p.Handle),
		Published:    p.Published,
		FreeShipping: p.FreeShipping,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.Image{
			ID:       img.ID,
			Src:      img.Src,
			Position: img.Position,
		})
	}

	for _, v := range p.Variants {
		product.Variants = append(product.Variants, v.toDomain(p.Attributes))
	}

	return product
}

func (v variantPayload) toDomain(attributes []map[string]string) domain.Variant {
	variant := domain.Variant{
		ID:               v.ID,
		Price:            parsePrice(v.Price),
		PromotionalPrice: parseOptionalPrice(v.PromotionalPrice),
		CompareAtPrice:   parseOptionalPrice(v.CompareAtPrice),
		Stock:            v.Stock,
	}
	if v.SKU != nil {
		variant.SKU = *v.SKU
	}

	// Zip attribute names with this variant's values. Positions past either
	// list's end are dropped rather than guessed at.
	for i, value := range v.Values {
		if i >= len(attributes) {
			break
		}
		variant.Options = append(variant.Options, domain.Option{
			Name:  domain.LocalizedString(attributes[i]),
			Value: domain.LocalizedString(value),
		})
	}

	return variant
}

// parsePrice degrades an unparsable price string to zero instead of failing;
// a broken price on one variant must not take down a whole listing.
func parsePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseOptionalPrice(raw *string) *decimal.Decimal {
	if raw == nil || *raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil
	}
	return &d
}
