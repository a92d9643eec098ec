package owner

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound   = errors.New("restaurant owner not found")
	ErrEmailTaken = errors.New("email is already in use")
)

// Owner represents a restaurant owner account.
type Owner struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	DateOfBirth  time.Time
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines persistence operations for restaurant owners.
type Repository interface {
	List(ctx context.Context) ([]Owner, error)
	GetByID(ctx context.Context, id int64) (*Owner, error)
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	Create(ctx context.Context, o *Owner) error
	Update(ctx context.Context, o *Owner) error
	Delete(ctx context.Context, id int64) error
}
