package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastline/feastline/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (customer_id, restaurant_id, order_type, total, order_number, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	insertOrderItemSQL = `INSERT INTO order_items (order_id, dish_id, quantity, size, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	listOrdersSQL = `SELECT o.id, o.customer_id, o.restaurant_id, o.order_type, o.total,
			o.order_number, o.status, o.created_at, o.updated_at,
			c.id, c.first_name, c.last_name,
			r.id, r.name, r.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN restaurants r ON r.id = o.restaurant_id
		ORDER BY o.id`

	getOrderSummarySQL = `SELECT o.id, o.customer_id, o.restaurant_id, o.order_type, o.total,
			o.order_number, o.status, o.created_at, o.updated_at,
			c.id, c.first_name, c.last_name,
			r.id, r.name, r.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = $1`

	getOrderByIDAndNumberSQL = `SELECT id, customer_id, restaurant_id, order_type, total,
			order_number, status, created_at, updated_at
		FROM orders WHERE id = $1 AND order_number = $2`

	updateOrderFieldsSQL = `UPDATE orders
		SET order_type = COALESCE($2, order_type),
			status = COALESCE($3, status),
			updated_at = now()
		WHERE id = $1
		RETURNING id, customer_id, restaurant_id, order_type, total,
			order_number, status, created_at, updated_at`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1
		RETURNING id, customer_id, restaurant_id, order_type, total,
			order_number, status, created_at, updated_at`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order and all of its line items in a single
// transaction. On order-number collision it returns order.ErrDuplicateNumber
// so the caller can regenerate and retry.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrderSQL,
			o.CustomerID, o.RestaurantID, string(o.Type), o.Total, o.Number, string(o.Status),
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID
			err := tx.QueryRow(ctx, insertOrderItemSQL,
				o.ID, item.DishID, item.Quantity, item.Size, item.Price,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("creating order item for dish %d: %w", item.DishID, err)
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return order.ErrDuplicateNumber
		}
		return fmt.Errorf("creating order %q: %w", o.Number, err)
	}
	return nil
}

// List returns every order joined with its customer and restaurant summaries.
func (r *OrderRepository) List(ctx context.Context) ([]order.Summary, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrderSummary)
}

// GetSummary returns a single order with summaries by its identifier.
func (r *OrderRepository) GetSummary(ctx context.Context, id int64) (*order.Summary, error) {
	rows, err := r.pool.Query(ctx, getOrderSummarySQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	s, err := pgx.CollectExactlyOneRow(rows, scanOrderSummary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.NotFoundError{OrderID: id}
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return &s, nil
}

// GetByIDAndNumber locates an order requiring both keys to match.
func (r *OrderRepository) GetByIDAndNumber(ctx context.Context, id int64, number string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDAndNumberSQL, id, number)
	if err != nil {
		return nil, fmt.Errorf("getting order %d/%s: %w", id, number, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.NotFoundError{OrderID: id, Number: number}
		}
		return nil, fmt.Errorf("getting order %d/%s: %w", id, number, err)
	}
	return &o, nil
}

// UpdateFields applies the non-nil type and status changes and returns the
// updated row.
func (r *OrderRepository) UpdateFields(ctx context.Context, id int64, typ *order.Type, status *order.Status) (*order.Order, error) {
	var typeArg, statusArg *string
	if typ != nil {
		s := string(*typ)
		typeArg = &s
	}
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.pool.Query(ctx, updateOrderFieldsSQL, id, typeArg, statusArg)
	if err != nil {
		return nil, fmt.Errorf("updating order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.NotFoundError{OrderID: id}
		}
		return nil, fmt.Errorf("updating order %d: %w", id, err)
	}
	return &o, nil
}

// Delete removes an order by id, cascading to its line items, and returns
// the deleted row.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, deleteOrderSQL, id)
	if err != nil {
		return nil, fmt.Errorf("deleting order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.NotFoundError{OrderID: id}
		}
		return nil, fmt.Errorf("deleting order %d: %w", id, err)
	}
	return &o, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o      order.Order
		typ    string
		status string
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.RestaurantID, &typ, &o.Total,
		&o.Number, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	o.Type = order.Type(typ)
	o.Status = order.Status(status)
	return o, err
}

func scanOrderSummary(row pgx.CollectableRow) (order.Summary, error) {
	var (
		s      order.Summary
		typ    string
		status string
	)
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.RestaurantID, &typ, &s.Total,
		&s.Number, &status, &s.CreatedAt, &s.UpdatedAt,
		&s.Customer.ID, &s.Customer.FirstName, &s.Customer.LastName,
		&s.Restaurant.ID, &s.Restaurant.Name, &s.Restaurant.Address,
	)
	s.Type = order.Type(typ)
	s.Status = order.Status(status)
	return s, err
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
