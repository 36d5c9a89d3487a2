package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/catalog"
	"github.com/lassenware/storefront-api/internal/config"
	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/service"
	"github.com/lassenware/storefront-api/internal/tiendanube"
	"github.com/lassenware/storefront-api/pkg/errors"
)

// ProductResponse is a product rendered for one locale
type ProductResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Handle       string            `json:"handle"`
	FreeShipping bool              `json:"free_shipping"`
	CreatedAt    string            `json:"created_at"`
	Images       []string          `json:"images,omitempty"`
	Variants     []VariantResponse `json:"variants"`
}

type VariantResponse struct {
	ID               int64            `json:"id"`
	SKU              string           `json:"sku,omitempty"`
	Price            string           `json:"price"`
	PromotionalPrice *string          `json:"promotional_price,omitempty"`
	CompareAtPrice   *string          `json:"compare_at_price,omitempty"`
	EffectivePrice   string           `json:"effective_price"`
	Stock            *int             `json:"stock"`
	Options          []OptionResponse `json:"options,omitempty"`
}

type OptionResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListProductsResponse carries the filtered listing, the facets available
// over the fetched collection, and the canonical query string for the
// applied spec.
type ListProductsResponse struct {
	Products []ProductResponse        `json:"products"`
	Filters  catalog.AvailableFilters `json:"filters"`
	Total    int                      `json:"total"`
	Query    string                   `json:"query,omitempty"`
}

// HandleListProducts handles GET /v1/products. The query string is the wire
// form of the filter spec (q, sort, min_price, max_price, page, attr_*).
func HandleListProducts(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	client := tiendanube.NewClient(cfg.Tiendanube, logger)
	listing := service.NewListingService(client, logger)

	return func(c *gin.Context) {
		spec := catalog.ParseFilterSpec(c.Request.URL.Query())
		locale := c.DefaultQuery("locale", domain.DefaultLocale)

		perPage := 0
		if raw := c.Query("per_page"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				perPage = n
			}
		}

		result, err := listing.ListProducts(c.Request.Context(), spec, locale, perPage)
		if err != nil {
			if upstream, ok := err.(*errors.ErrUpstream); ok {
				logger.Error("Catalog read failed", zap.Int("status", upstream.Status))
				c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
				return
			}
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		products := make([]ProductResponse, 0, len(result.Products))
		for _, p := range result.Products {
			products = append(products, toProductResponse(p, locale))
		}

		c.JSON(http.StatusOK, ListProductsResponse{
			Products: products,
			Filters:  result.Filters,
			Total:    result.Total,
			Query:    spec.QueryValues().Encode(),
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	client := tiendanube.NewClient(cfg.Tiendanube, logger)

	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}
		locale := c.DefaultQuery("locale", domain.DefaultLocale)

		product, err := client.GetProduct(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toProductResponse(*product, locale))
	}
}

func toProductResponse(p domain.Product, locale string) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name.Get(locale),
		Description:  p.Description.Get(locale),
		Handle:       p.Handle.Get(locale),
		FreeShipping: p.FreeShipping,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	for _, img := range p.Images {
		resp.Images = append(resp.Images, img.Src)
	}

	for _, v := range p.Variants {
		variant := VariantResponse{
			ID:             v.ID,
			SKU:            v.SKU,
			Price:          v.Price.StringFixed(2),
			EffectivePrice: v.EffectivePrice().StringFixed(2),
			Stock:          v.Stock,
		}
		if v.PromotionalPrice != nil {
			s := v.PromotionalPrice.StringFixed(2)
			variant.PromotionalPrice = &s
		}
		if v.CompareAtPrice != nil {
			s := v.CompareAtPrice.StringFixed(2)
			variant.CompareAtPrice = &s
		}
		for _, opt := range v.Options {
			variant.Options = append(variant.Options, OptionResponse{
				Name:  opt.Name.Get(locale),
				Value: opt.Value.Get(locale),
			})
		}
		resp.Variants = append(resp.Variants, variant)
	}

	return resp
}
