package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/restaurant"
)

const (
	restaurantColumns = `id, owner_id, name, email, phone, address, description, rating,
		offers_pickup, offers_delivery, image_url, created_at, updated_at`

	listRestaurantsSQL   = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`
	getRestaurantByIDSQL = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	insertRestaurantSQL = `INSERT INTO restaurants
		(owner_id, name, email, phone, address, description, rating, offers_pickup, offers_delivery, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
		RETURNING id, created_at, updated_at`

	updateRestaurantSQL = `UPDATE restaurants
		SET name = $2, email = $3, phone = $4, address = $5, description = $6, rating = $7,
			offers_pickup = $8, offers_delivery = $9, image_url = NULLIF($10, ''), updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	deleteRestaurantSQL = `DELETE FROM restaurants WHERE id = $1`
)

var _ restaurant.Repository = (*RestaurantRepository)(nil)

// RestaurantRepository implements restaurant.Repository backed by PostgreSQL.
type RestaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository returns a RestaurantRepository that uses the given pool.
func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// List returns every restaurant ordered by id.
func (r *RestaurantRepository) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	rows, err := r.pool.Query(ctx, listRestaurantsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	return pgx.CollectRows(rows, scanRestaurant)
}

// GetByID returns a single restaurant by its identifier.
func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	rows, err := r.pool.Query(ctx, getRestaurantByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting restaurant %d: %w", id, err)
	}

	rest, err := pgx.CollectExactlyOneRow(rows, scanRestaurant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, restaurant.ErrNotFound
		}
		return nil, fmt.Errorf("getting restaurant %d: %w", id, err)
	}
	return &rest, nil
}

// Create inserts a restaurant and fills in its generated fields.
func (r *RestaurantRepository) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	err := r.pool.QueryRow(ctx, insertRestaurantSQL,
		rest.OwnerID, rest.Name, rest.Email, rest.Phone, rest.Address, rest.Description,
		rest.Rating, rest.OffersPickup, rest.OffersDelivery, rest.ImageURL,
	).Scan(&rest.ID, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating restaurant %q: %w", rest.Name, err)
	}
	return nil
}

// Update rewrites the mutable restaurant fields.
func (r *RestaurantRepository) Update(ctx context.Context, rest *restaurant.Restaurant) error {
	err := r.pool.QueryRow(ctx, updateRestaurantSQL,
		rest.ID, rest.Name, rest.Email, rest.Phone, rest.Address, rest.Description,
		rest.Rating, rest.OffersPickup, rest.OffersDelivery, rest.ImageURL,
	).Scan(&rest.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return restaurant.ErrNotFound
		}
		return fmt.Errorf("updating restaurant %d: %w", rest.ID, err)
	}
	return nil
}

// Delete removes a restaurant by id.
func (r *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, deleteRestaurantSQL, id)
	if err != nil {
		return fmt.Errorf("deleting restaurant %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return restaurant.ErrNotFound
	}
	return nil
}

func scanRestaurant(row pgx.CollectableRow) (restaurant.Restaurant, error) {
	var (
		rest     restaurant.Restaurant
		imageURL *string
	)
	err := row.Scan(
		&rest.ID, &rest.OwnerID, &rest.Name, &rest.Email, &rest.Phone, &rest.Address,
		&rest.Description, &rest.Rating, &rest.OffersPickup, &rest.OffersDelivery,
		&imageURL, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if imageURL != nil {
		rest.ImageURL = *imageURL
	}
	return rest, err
}
