package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/customer"
)

const (
	customerColumns = `id, first_name, last_name, email, password, phone, address,
		date_of_birth, image_url, created_at, updated_at`

	listCustomersSQL      = `SELECT ` + customerColumns + ` FROM customers ORDER BY id`
	getCustomerByIDSQL    = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	getCustomerByEmailSQL = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	insertCustomerSQL = `INSERT INTO customers
		(first_name, last_name, email, password, phone, address, date_of_birth, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING id, created_at, updated_at`

	updateCustomerSQL = `UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, password = $5, phone = $6,
			address = $7, date_of_birth = $8, image_url = NULLIF($9, ''), updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// List returns every customer ordered by id.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

// GetByID returns a single customer by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}
	return &c, nil
}

// GetByEmail returns a single customer by email.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("getting customer by email: %w", err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer by email: %w", err)
	}
	return &c, nil
}

// Create inserts a customer. Email collisions surface as
// customer.ErrEmailTaken.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	err := r.pool.QueryRow(ctx, insertCustomerSQL,
		c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Phone, c.Address,
		c.DateOfBirth, c.ImageURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "customers_email_key") {
			return customer.ErrEmailTaken
		}
		return fmt.Errorf("creating customer %q: %w", c.Email, err)
	}
	return nil
}

// Update rewrites the mutable customer fields.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	err := r.pool.QueryRow(ctx, updateCustomerSQL,
		c.ID, c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Phone,
		c.Address, c.DateOfBirth, c.ImageURL,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.ErrNotFound
		}
		if isUniqueViolation(err, "customers_email_key") {
			return customer.ErrEmailTaken
		}
		return fmt.Errorf("updating customer %d: %w", c.ID, err)
	}
	return nil
}

// Delete removes a customer by id.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, deleteCustomerSQL, id)
	if err != nil {
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var (
		c        customer.Customer
		imageURL *string
	)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.Phone,
		&c.Address, &c.DateOfBirth, &imageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if imageURL != nil {
		c.ImageURL = *imageURL
	}
	return c, err
}
