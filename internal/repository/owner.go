package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/owner"
)

const (
	ownerColumns = `id, first_name, last_name, email, password, phone, address,
		date_of_birth, image_url, created_at, updated_at`

	listOwnersSQL      = `SELECT ` + ownerColumns + ` FROM restaurant_owners ORDER BY id`
	getOwnerByIDSQL    = `SELECT ` + ownerColumns + ` FROM restaurant_owners WHERE id = $1`
	getOwnerByEmailSQL = `SELECT ` + ownerColumns + ` FROM restaurant_owners WHERE email = $1`

	insertOwnerSQL = `INSERT INTO restaurant_owners
		(first_name, last_name, email, password, phone, address, date_of_birth, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING id, created_at, updated_at`

	updateOwnerSQL = `UPDATE restaurant_owners
		SET first_name = $2, last_name = $3, email = $4, password = $5, phone = $6,
			address = $7, date_of_birth = $8, image_url = NULLIF($9, ''), updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	deleteOwnerSQL = `DELETE FROM restaurant_owners WHERE id = $1`
)

var _ owner.Repository = (*OwnerRepository)(nil)

// OwnerRepository implements owner.Repository backed by PostgreSQL.
type OwnerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository returns an OwnerRepository that uses the given pool.
func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

func (r *OwnerRepository) List(ctx context.Context) ([]owner.Owner, error) {
	rows, err := r.pool.Query(ctx, listOwnersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	return pgx.CollectRows(rows, scanOwner)
}

func (r *OwnerRepository) GetByID(ctx context.Context, id int64) (*owner.Owner, error) {
	rows, err := r.pool.Query(ctx, getOwnerByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting owner %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrNotFound
		}
		return nil, fmt.Errorf("getting owner %d: %w", id, err)
	}
	return &o, nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*owner.Owner, error) {
	rows, err := r.pool.Query(ctx, getOwnerByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("getting owner by email: %w", err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrNotFound
		}
		return nil, fmt.Errorf("getting owner by email: %w", err)
	}
	return &o, nil
}

func (r *OwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	err := r.pool.QueryRow(ctx, insertOwnerSQL,
		o.FirstName, o.LastName, o.Email, o.PasswordHash, o.Phone, o.Address,
		o.DateOfBirth, o.ImageURL,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "restaurant_owners_email_key") {
			return owner.ErrEmailTaken
		}
		return fmt.Errorf("creating owner %q: %w", o.Email, err)
	}
	return nil
}

func (r *OwnerRepository) Update(ctx context.Context, o *owner.Owner) error {
	err := r.pool.QueryRow(ctx, updateOwnerSQL,
		o.ID, o.FirstName, o.LastName, o.Email, o.PasswordHash, o.Phone,
		o.Address, o.DateOfBirth, o.ImageURL,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return owner.ErrNotFound
		}
		if isUniqueViolation(err, "restaurant_owners_email_key") {
			return owner.ErrEmailTaken
		}
		return fmt.Errorf("updating owner %d: %w", o.ID, err)
	}
	return nil
}

func (r *OwnerRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, deleteOwnerSQL, id)
	if err != nil {
		return fmt.Errorf("deleting owner %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return owner.ErrNotFound
	}
	return nil
}

func scanOwner(row pgx.CollectableRow) (owner.Owner, error) {
	var (
		o        owner.Owner
		imageURL *string
	)
	err := row.Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.PasswordHash, &o.Phone,
		&o.Address, &o.DateOfBirth, &imageURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if imageURL != nil {
		o.ImageURL = *imageURL
	}
	return o, err
}
