package order

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the fulfilment type of an order.
type Type string

const (
	TypePickup   Type = "pickup"
	TypeDelivery Type = "delivery"
)

// ParseType matches an order type case-insensitively.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(s)) {
	case TypePickup:
		return TypePickup, true
	case TypeDelivery:
		return TypeDelivery, true
	}
	return "", false
}

// Status is the lifecycle state of an order. Statuses are stored lowercase
// and matched case-insensitively on input. Any status may follow any other;
// there is no transition graph.
type Status string

const (
	StatusPending        Status = "pending"
	StatusProcessing     Status = "processing"
	StatusOutForDelivery Status = "out for delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// ParseStatus matches a status case-insensitively and normalizes to lowercase.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(s)); st {
	case StatusPending, StatusProcessing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return st, true
	}
	return "", false
}

// Order represents a placed order. Total is always derived from catalog
// prices at creation time, never from request payload.
type Order struct {
	ID           int64
	CustomerID   int64
	RestaurantID int64
	Type         Type
	Total        decimal.Decimal
	Number       string
	Status       Status
	Items        []Item
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Item is a single line item within an order. Size and Price are snapshots
// taken at creation time: they default from the dish when the request omits
// them and do not track later catalog changes.
type Item struct {
	ID       int64
	OrderID  int64
	DishID   int64
	Quantity int
	Size     string
	Price    decimal.Decimal
}

// CustomerSummary is the customer slice included in order listings.
type CustomerSummary struct {
	ID        int64
	FirstName string
	LastName  string
}

// RestaurantSummary is the restaurant slice included in order listings.
type RestaurantSummary struct {
	ID      int64
	Name    string
	Address string
}

// Summary is an order joined with its customer and restaurant summaries.
// Listings do not include line items.
type Summary struct {
	Order
	Customer   CustomerSummary
	Restaurant RestaurantSummary
}

// Repository defines persistence operations for orders.
//
// Create must persist the order row and all of its line items in a single
// transaction: a failure partway must leave no rows behind. It returns
// ErrDuplicateNumber when the order number collides with an existing one.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Summary, error)
	GetSummary(ctx context.Context, id int64) (*Summary, error)
	GetByIDAndNumber(ctx context.Context, id int64, number string) (*Order, error)
	UpdateFields(ctx context.Context, id int64, typ *Type, status *Status) (*Order, error)
	Delete(ctx context.Context, id int64) (*Order, error)
}
