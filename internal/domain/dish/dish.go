package dish

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested dish does not exist.
var ErrNotFound = errors.New("dish not found")

// Dish represents a single menu entry in a restaurant's catalog.
type Dish struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Size         string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines persistence operations for the dish catalog.
type Repository interface {
	List(ctx context.Context) ([]Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]Dish, error)
	GetByID(ctx context.Context, id int64) (*Dish, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Dish, error)
	Create(ctx context.Context, d *Dish) error
	Update(ctx context.Context, d *Dish) error
	Delete(ctx context.Context, id int64) error
}
