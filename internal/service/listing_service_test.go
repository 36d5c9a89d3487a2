package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/catalog"
	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/tiendanube"
)

type fakeLister struct {
	products   []domain.Product
	lastParams tiendanube.ListProductsParams
}

func (f *fakeLister) ListProducts(_ context.Context, params tiendanube.ListProductsParams) ([]domain.Product, error) {
	f.lastParams = params
	return f.products, nil
}

func listingProduct(id int64, priceStr string, created time.Time) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      domain.LocalizedString{"es": "Producto"},
		CreatedAt: created,
		Variants: []domain.Variant{
			{ID: id * 10, Price: decimal.RequireFromString(priceStr)},
		},
	}
}

func TestListProducts_AppliesSpecAndComputesFacets(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{products: []domain.Product{
		listingProduct(1, "50", now),
		listingProduct(2, "150", now.Add(time.Hour)),
		listingProduct(3, "300", now.Add(2*time.Hour)),
	}}
	svc := NewListingService(lister, zap.NewNop())

	min := decimal.NewFromInt(100)
	result, err := svc.ListProducts(context.Background(), catalog.FilterSpec{
		Sort:     domain.SortPriceDesc,
		MinPrice: &min,
		Page:     2,
	}, "es", 24)
	require.NoError(t, err)

	assert.Equal(t, 2, lister.lastParams.Page)
	assert.Equal(t, 24, lister.lastParams.PerPage)
	require.NotNil(t, lister.lastParams.Published)
	assert.True(t, *lister.lastParams.Published)

	require.Len(t, result.Products, 2)
	assert.Equal(t, int64(3), result.Products[0].ID)
	assert.Equal(t, int64(2), result.Products[1].ID)
	assert.Equal(t, 2, result.Total)

	// Facets cover the fetched collection, not just the filtered subset
	require.True(t, result.Filters.HasPriceRange)
	assert.True(t, result.Filters.PriceRange.Min.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.Filters.PriceRange.Max.Equal(decimal.NewFromInt(300)))
}
