package tiendanube

import (
	"context"
	"net/url"
	"strconv"

	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/pkg/errors"
)

// ListProductsParams controls the paginated catalog read
type ListProductsParams struct {
	Page       int
	PerPage    int
	CategoryID int64
	Handle     string
	Published  *bool
}

const (
	defaultPerPage = 12
	maxPerPage     = 200
)

// ListProducts fetches one catalog page and converts it to domain products
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if params.Published != nil {
		query.Set("published", strconv.FormatBool(*params.Published))
	}
	if params.CategoryID != 0 {
		query.Set("category_id", strconv.FormatInt(params.CategoryID, 10))
	}
	if params.Handle != "" {
		query.Set("handle", params.Handle)
	}

	var payloads []productPayload
	if err := c.get(ctx, "/products", query, &payloads); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.toDomain())
	}
	return products, nil
}

// GetProduct fetches a single product by ID
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var payload productPayload
	if err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		if upstream, ok := err.(*errors.ErrUpstream); ok && upstream.Status == 404 {
			return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}

	product := payload.toDomain()
	return &product, nil
}

// GetProductByHandle fetches a single product by its slug
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	products, err := c.ListProducts(ctx, ListProductsParams{Handle: handle, PerPage: 1})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &errors.ErrNotFound{Resource: "product", ID: handle}
	}
	return &products[0], nil
}
