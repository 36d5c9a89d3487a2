package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/catalog"
	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/tiendanube"
)

// ProductLister is the catalog read the listing service depends on
type ProductLister interface {
	ListProducts(ctx context.Context, params tiendanube.ListProductsParams) ([]domain.Product, error)
}

type listingService struct {
	products ProductLister
	logger   *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(products ProductLister, logger *zap.Logger) *listingService {
	return &listingService{
		products: products,
		logger:   logger,
	}
}

// ListingResult is a rendered catalog page: the filtered and sorted products
// plus the filters available over the fetched collection.
type ListingResult struct {
	Products []domain.Product
	Filters  catalog.AvailableFilters
	Total    int
}

// ListProducts fetches a published-catalog page and applies the filter spec.
// Available filters are computed over the fetched collection before
// filtering, so deselecting a value keeps it offered.
func (s *listingService) ListProducts(
	ctx context.Context,
	spec catalog.FilterSpec,
	locale string,
	perPage int,
) (*ListingResult, error) {
	published := true
	products, err := s.products.ListProducts(ctx, tiendanube.ListProductsParams{
		Page:      spec.Page,
		PerPage:   perPage,
		Published: &published,
	})
	if err != nil {
		return nil, err
	}

	available := catalog.ExtractAvailableFilters(products, locale)
	filtered := catalog.FilterProducts(products, spec, locale)
	sorted := catalog.SortProducts(filtered, spec.Sort)

	s.logger.Debug("Listing computed",
		zap.Int("fetched", len(products)),
		zap.Int("matched", len(sorted)),
		zap.String("locale", locale),
	)

	return &ListingResult{
		Products: sorted,
		Filters:  available,
		Total:    len(sorted),
	}, nil
}
