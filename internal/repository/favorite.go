package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/favorite"
)

const (
	listFavoritesSQL = `SELECT restaurant_id FROM favorites WHERE customer_id = $1 ORDER BY created_at`

	insertFavoriteSQL = `INSERT INTO favorites (customer_id, restaurant_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`

	deleteFavoriteSQL = `DELETE FROM favorites WHERE customer_id = $1 AND restaurant_id = $2`
)

var _ favorite.Repository = (*FavoriteRepository)(nil)

// FavoriteRepository implements favorite.Repository backed by PostgreSQL.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository returns a FavoriteRepository that uses the given pool.
func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// ListByCustomer returns the restaurant ids the customer has favorited.
func (r *FavoriteRepository) ListByCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, listFavoritesSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites for customer %d: %w", customerID, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// Add records a favorite; adding an existing pair is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, customerID, restaurantID int64) error {
	_, err := r.pool.Exec(ctx, insertFavoriteSQL, customerID, restaurantID)
	if err != nil {
		return fmt.Errorf("adding favorite %d/%d: %w", customerID, restaurantID, err)
	}
	return nil
}

// Remove deletes a favorite; removing a missing pair is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, customerID, restaurantID int64) error {
	_, err := r.pool.Exec(ctx, deleteFavoriteSQL, customerID, restaurantID)
	if err != nil {
		return fmt.Errorf("removing favorite %d/%d: %w", customerID, restaurantID, err)
	}
	return nil
}
