package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/repository"
	"github.com/lassenware/storefront-api/pkg/errors"
)

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

// NewRepositories wires all Postgres-backed repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Cart: NewCartRepository(db, logger),
	}
}

func (r *cartRepository) Get(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error) {
	query := `
		SELECT items
		FROM carts
		WHERE id = $1
	`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, cartID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: cartID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get cart", zap.Error(err))
		return nil, err
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Error("Failed to decode cart snapshot", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, cartID uuid.UUID, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET items = $2, updated_at = $3
	`

	_, err = r.db.ExecContext(ctx, query, cartID, raw, time.Now())
	if err != nil {
		r.logger.Error("Failed to save cart", zap.Error(err))
		return err
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	query := `
		DELETE FROM carts
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, cartID)
	if err != nil {
		r.logger.Error("Failed to delete cart", zap.Error(err))
		return err
	}

	return nil
}
