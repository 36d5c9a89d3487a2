package tiendanube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/config"
	"github.com/lassenware/storefront-api/pkg/errors"
)

const productsPage = `[
  {
    "id": 101,
    "name": {"es": "Remera básica", "en": "Basic tee"},
    "description": {"es": "Algodón peinado"},
    "handle": {"es": "remera-basica"},
    "attributes": [{"es": "Color", "en": "Colour"}, {"es": "Talle"}],
    "published": true,
    "free_shipping": true,
    "created_at": "2025-03-01T12:00:00+00:00",
    "updated_at": "2025-03-02T12:00:00+00:00",
    "variants": [
      {
        "id": 1001,
        "sku": "REM-AZUL-M",
        "price": "1500.00",
        "promotional_price": "990.50",
        "compare_at_price": null,
        "stock": 3,
        "values": [{"es": "Azul", "en": "Blue"}, {"es": "M"}]
      },
      {
        "id": 1002,
        "sku": null,
        "price": "not-a-price",
        "promotional_price": null,
        "compare_at_price": "2000.00",
        "stock": null,
        "values": [{"es": "Rojo"}, {"es": "L"}, {"es": "huérfano"}]
      }
    ],
    "images": [{"id": 5, "src": "https://cdn.example.com/remera.jpg", "position": 1}]
  }
]`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.TiendanubeConfig{
		StoreID:     "123",
		AccessToken: "token-abc",
		APIURL:      server.URL,
		UserAgent:   "storefront-api-test",
	}, zap.NewNop())

	return client, server
}

func TestListProducts_ConvertsPayloadToDomain(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authentication")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(productsPage))
	}))

	published := true
	products, err := client.ListProducts(context.Background(), ListProductsParams{
		Page:      2,
		PerPage:   24,
		Published: &published,
	})
	require.NoError(t, err)

	assert.Equal(t, "/123/products", gotPath)
	assert.Equal(t, "bearer token-abc", gotAuth)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"24"}, gotQuery["per_page"])
	assert.Equal(t, []string{"true"}, gotQuery["published"])

	require.Len(t, products, 1)
	product := products[0]
	assert.Equal(t, int64(101), product.ID)
	assert.Equal(t, "Basic tee", product.Name.Get("en"))
	assert.Equal(t, "Algodón peinado", product.Description.Get("en"), "missing translation falls back to default locale")
	assert.True(t, product.FreeShipping)
	require.Len(t, product.Images, 1)

	require.Len(t, product.Variants, 2)
	first := product.Variants[0]
	assert.Equal(t, "REM-AZUL-M", first.SKU)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("1500.00")))
	require.NotNil(t, first.PromotionalPrice)
	assert.True(t, first.EffectivePrice().Equal(decimal.RequireFromString("990.50")))
	require.NotNil(t, first.Stock)
	assert.Equal(t, 3, *first.Stock)
	require.Len(t, first.Options, 2)
	assert.Equal(t, "Colour", first.Options[0].Name.Get("en"))
	assert.Equal(t, "Blue", first.Options[0].Value.Get("en"))
	assert.Equal(t, "Talle", first.Options[1].Name.Get("en"), "attribute name falls back to default locale")

	second := product.Variants[1]
	assert.True(t, second.Price.IsZero(), "unparsable price degrades to zero")
	assert.Nil(t, second.PromotionalPrice)
	require.NotNil(t, second.CompareAtPrice)
	assert.Nil(t, second.Stock)
	// The third value has no matching attribute dimension and is dropped
	assert.Len(t, second.Options, 2)
}

func TestGetProduct_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), 999)

	require.Error(t, err)
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok, "expected ErrNotFound, got %T", err)
}

func TestGetProductByHandle_EmptyListIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "remera-inexistente", r.URL.Query().Get("handle"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	_, err := client.GetProductByHandle(context.Background(), "remera-inexistente")

	require.Error(t, err)
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok)
}

func TestListProducts_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"too many requests"}`, http.StatusTooManyRequests)
	}))

	_, err := client.ListProducts(context.Background(), ListProductsParams{})

	require.Error(t, err)
	upstream, ok := err.(*errors.ErrUpstream)
	require.True(t, ok, "expected ErrUpstream, got %T", err)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
}
