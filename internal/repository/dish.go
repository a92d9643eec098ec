package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/dish"
)

const (
	dishColumns = `id, restaurant_id, name, description, price, size, image_url, created_at, updated_at`

	listDishesSQL             = `SELECT ` + dishColumns + ` FROM dishes ORDER BY id`
	listDishesByRestaurantSQL = `SELECT ` + dishColumns + ` FROM dishes WHERE restaurant_id = $1 ORDER BY id`
	getDishByIDSQL            = `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`
	getDishesByIDsSQL         = `SELECT ` + dishColumns + ` FROM dishes WHERE id = ANY($1)`

	insertDishSQL = `INSERT INTO dishes (restaurant_id, name, description, price, size, image_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at, updated_at`

	updateDishSQL = `UPDATE dishes
		SET name = $2, description = $3, price = $4, size = $5, image_url = NULLIF($6, ''), updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	deleteDishSQL = `DELETE FROM dishes WHERE id = $1`
)

var _ dish.Repository = (*DishRepository)(nil)

// DishRepository implements dish.Repository backed by PostgreSQL.
type DishRepository struct {
	pool *pgxpool.Pool
}

// NewDishRepository returns a DishRepository that uses the given pool.
func NewDishRepository(pool *pgxpool.Pool) *DishRepository {
	return &DishRepository{pool: pool}
}

// List returns every dish ordered by id.
func (r *DishRepository) List(ctx context.Context) ([]dish.Dish, error) {
	rows, err := r.pool.Query(ctx, listDishesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing dishes: %w", err)
	}
	return pgx.CollectRows(rows, scanDish)
}

// ListByRestaurant returns the catalog of a single restaurant.
func (r *DishRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]dish.Dish, error) {
	rows, err := r.pool.Query(ctx, listDishesByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("listing dishes for restaurant %d: %w", restaurantID, err)
	}
	return pgx.CollectRows(rows, scanDish)
}

// GetByID returns a single dish by its identifier.
func (r *DishRepository) GetByID(ctx context.Context, id int64) (*dish.Dish, error) {
	rows, err := r.pool.Query(ctx, getDishByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting dish %d: %w", id, err)
	}

	d, err := pgx.CollectExactlyOneRow(rows, scanDish)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dish.ErrNotFound
		}
		return nil, fmt.Errorf("getting dish %d: %w", id, err)
	}
	return &d, nil
}

// GetByIDs returns dishes matching any of the given IDs in one query.
func (r *DishRepository) GetByIDs(ctx context.Context, ids []int64) ([]dish.Dish, error) {
	rows, err := r.pool.Query(ctx, getDishesByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting dishes by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanDish)
}

// Create inserts a dish and fills in its generated fields.
func (r *DishRepository) Create(ctx context.Context, d *dish.Dish) error {
	err := r.pool.QueryRow(ctx, insertDishSQL,
		d.RestaurantID, d.Name, d.Description, d.Price, d.Size, d.ImageURL,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating dish %q: %w", d.Name, err)
	}
	return nil
}

// Update rewrites the mutable dish fields.
func (r *DishRepository) Update(ctx context.Context, d *dish.Dish) error {
	err := r.pool.QueryRow(ctx, updateDishSQL,
		d.ID, d.Name, d.Description, d.Price, d.Size, d.ImageURL,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dish.ErrNotFound
		}
		return fmt.Errorf("updating dish %d: %w", d.ID, err)
	}
	return nil
}

// Delete removes a dish by id.
func (r *DishRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, deleteDishSQL, id)
	if err != nil {
		return fmt.Errorf("deleting dish %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return dish.ErrNotFound
	}
	return nil
}

func scanDish(row pgx.CollectableRow) (dish.Dish, error) {
	var (
		d        dish.Dish
		imageURL *string
	)
	err := row.Scan(
		&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.Price, &d.Size,
		&imageURL, &d.CreatedAt, &d.UpdatedAt,
	)
	if imageURL != nil {
		d.ImageURL = *imageURL
	}
	return d, err
}
