package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/repository"
	"github.com/lassenware/storefront-api/pkg/errors"
)

// NewItem is the caller-supplied part of a line item. Quantity is never
// accepted here: AddItem always adds exactly one unit, and repeated calls are
// the only way to grow a line through this path.
type NewItem struct {
	ProductID int64
	VariantID int64
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Options   string
}

// Store holds one cart's ordered line items, keyed by variant ID, and writes
// a snapshot through the repository after every mutation. Persistence is
// best-effort: a failed write is logged and the in-memory state stands.
// Mutations are serialized with a mutex because the store is shared across
// request handlers.
type Store struct {
	id     uuid.UUID
	repo   repository.CartRepository
	logger *zap.Logger

	mu    sync.Mutex
	items []domain.LineItem
}

// NewStore creates an empty cart store
func NewStore(id uuid.UUID, repo repository.CartRepository, logger *zap.Logger) *Store {
	return &Store{
		id:     id,
		repo:   repo,
		logger: logger,
	}
}

// Load restores a cart from its persisted snapshot. A missing snapshot means
// a fresh cart, not an error. Lines that no longer satisfy the store's
// invariants (duplicate variant, non-positive quantity) are dropped on load.
func Load(ctx context.Context, id uuid.UUID, repo repository.CartRepository, logger *zap.Logger) (*Store, error) {
	store := NewStore(id, repo, logger)

	items, err := repo.Get(ctx, id)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return store, nil
		}
		return nil, err
	}

	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.VariantID]; dup {
			continue
		}
		seen[item.VariantID] = struct{}{}
		store.items = append(store.items, item)
	}

	return store, nil
}

// ID returns the cart identifier
func (s *Store) ID() uuid.UUID {
	return s.id
}

// AddItem inserts a new line with quantity 1, or increments the existing
// line for the same variant by exactly 1. The unit price, name, and image
// are snapshots from the first add and are not touched on increments.
func (s *Store) AddItem(ctx context.Context, item NewItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].VariantID == item.VariantID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.items = append(s.items, domain.LineItem{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
		Image:     item.Image,
		Options:   item.Options,
	})
	s.persist(ctx)
}

// UpdateQuantity sets a line's quantity to the given absolute value. A
// quantity of zero or less removes the line. Updating a variant that is not
// in the cart is a silent no-op.
func (s *Store) UpdateQuantity(ctx context.Context, variantID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, variantID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// RemoveItem deletes the line for the variant if present; no-op otherwise
func (s *Store) RemoveItem(ctx context.Context, variantID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the line items in insertion order
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems returns the sum of quantities across all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity across all lines, using the
// snapshots taken at add time.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// persist is called with the mutex held
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.id, s.items); err != nil {
		s.logger.Warn("Failed to persist cart snapshot",
			zap.String("cart_id", s.id.String()),
			zap.Error(err),
		)
	}
}
