package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lassenware/storefront-api/internal/domain"
)

// CartRepository persists cart line-item snapshots keyed by cart ID. The
// snapshot is the flat line-item list; it must round-trip exactly.
type CartRepository interface {
	Get(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error)
	Save(ctx context.Context, cartID uuid.UUID, items []domain.LineItem) error
	Delete(ctx context.Context, cartID uuid.UUID) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Cart CartRepository
}
