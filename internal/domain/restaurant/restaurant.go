package restaurant

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested restaurant does not exist.
var ErrNotFound = errors.New("restaurant not found")

// Restaurant represents a listed restaurant and its fulfilment capabilities.
// An order can only be placed against a restaurant whose capability flags
// allow the requested order type.
type Restaurant struct {
	ID             int64
	OwnerID        int64
	Name           string
	Email          string
	Phone          string
	Address        string
	Description    string
	Rating         decimal.Decimal
	OffersPickup   bool
	OffersDelivery bool
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Repository defines persistence operations for restaurants.
type Repository interface {
	List(ctx context.Context) ([]Restaurant, error)
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	Create(ctx context.Context, r *Restaurant) error
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id int64) error
}
