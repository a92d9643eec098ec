package order

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/feastline/feastline/internal/domain/customer"
	"github.com/feastline/feastline/internal/domain/dish"
	"github.com/feastline/feastline/internal/domain/restaurant"
)

// maxNumberAttempts bounds the retry loop around order-number collisions.
const maxNumberAttempts = 5

// CreateRequest holds the input for placing an order.
type CreateRequest struct {
	CustomerID   int64
	RestaurantID int64
	Type         string
	Items        []ItemRequest
}

// ItemRequest is a single requested line item. Size and Price are optional;
// when absent they default from the dish at persistence time.
type ItemRequest struct {
	DishID   int64
	Quantity int
	Size     string
	Price    *decimal.Decimal
}

// ItemDetail is a line item enriched with its dish's descriptive fields for
// the creation response.
type ItemDetail struct {
	DishID      int64
	Name        string
	Description string
	Size        string
	Price       decimal.Decimal
	Quantity    int
}

// CreateResult holds the output of a successfully placed order.
type CreateResult struct {
	Order *Order
	Items []ItemDetail
}

// UpdateRequest holds the optional field updates for an order. Number is the
// match key: the order is located by id AND order number. Empty strings mean
// the field is absent.
type UpdateRequest struct {
	Number string
	Type   string
	Status string
}

// Service encapsulates the order workflow business logic.
type Service struct {
	customers   customer.Repository
	restaurants restaurant.Repository
	dishes      dish.Repository
	orders      Repository
}

// NewService creates an order Service with the required domain dependencies.
func NewService(
	customers customer.Repository,
	restaurants restaurant.Repository,
	dishes dish.Repository,
	orders Repository,
) *Service {
	return &Service{
		customers:   customers,
		restaurants: restaurants,
		dishes:      dishes,
		orders:      orders,
	}
}

// Create validates the request, computes the total from catalog prices, and
// persists the order together with its line items atomically.
//
// The total is always derived from catalog prices. A caller-supplied item
// price only affects the stored line-item snapshot, which defaults to the
// catalog price when absent.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if req.CustomerID == 0 || req.RestaurantID == 0 || len(req.Items) == 0 {
		return nil, ErrMissingFields
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: req.CustomerID}
		}
		return nil, errors.Wrap(err, "get customer")
	}

	rest, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return nil, &RestaurantNotFoundError{RestaurantID: req.RestaurantID}
		}
		return nil, errors.Wrap(err, "get restaurant")
	}

	typ, err := s.checkType(rest, req.Type)
	if err != nil {
		return nil, err
	}

	// Resolve all referenced dishes in one batch. Duplicate ids are fine;
	// only existence is checked.
	ids := make([]int64, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.DishID
	}
	fetched, err := s.dishes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get dishes")
	}
	dishMap := make(map[int64]dish.Dish, len(fetched))
	for _, d := range fetched {
		dishMap[d.ID] = d
	}
	for _, item := range req.Items {
		if _, ok := dishMap[item.DishID]; !ok {
			return nil, &InvalidDishError{DishID: item.DishID}
		}
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{DishID: item.DishID}
		}
	}

	// Total from catalog prices only.
	total := decimal.Zero
	for _, item := range req.Items {
		d := dishMap[item.DishID]
		total = total.Add(d.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total = total.Round(2)

	items := make([]Item, len(req.Items))
	for i, item := range req.Items {
		d := dishMap[item.DishID]
		size := item.Size
		if size == "" {
			size = d.Size
		}
		price := d.Price
		if item.Price != nil {
			price = *item.Price
		}
		items[i] = Item{
			DishID:   item.DishID,
			Quantity: item.Quantity,
			Size:     size,
			Price:    price,
		}
	}

	o := &Order{
		CustomerID:   req.CustomerID,
		RestaurantID: req.RestaurantID,
		Type:         typ,
		Total:        total,
		Status:       StatusPending,
		Items:        items,
	}

	// Order numbers are best-effort unique; retry a bounded number of times
	// on collision.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		o.Number = generateNumber()
		err := s.orders.Create(ctx, o)
		if errors.Is(err, ErrDuplicateNumber) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "create order")
		}

		details := make([]ItemDetail, len(req.Items))
		for i, item := range req.Items {
			d := dishMap[item.DishID]
			details[i] = ItemDetail{
				DishID:      d.ID,
				Name:        d.Name,
				Description: d.Description,
				Size:        d.Size,
				Price:       d.Price,
				Quantity:    item.Quantity,
			}
		}
		return &CreateResult{Order: o, Items: details}, nil
	}

	return nil, ErrNumberExhausted
}

// checkType validates the raw order type string against the enum and the
// restaurant's capability flags.
func (s *Service) checkType(rest *restaurant.Restaurant, raw string) (Type, error) {
	typ, ok := ParseType(raw)
	if !ok {
		return "", ErrInvalidType
	}
	if typ == TypeDelivery && !rest.OffersDelivery {
		return "", &UnsupportedTypeError{RestaurantID: rest.ID, Type: TypeDelivery}
	}
	if typ == TypePickup && !rest.OffersPickup {
		return "", &UnsupportedTypeError{RestaurantID: rest.ID, Type: TypePickup}
	}
	return typ, nil
}

// List returns every order with customer and restaurant summaries.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	summaries, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return summaries, nil
}

// Get returns a single order summary by id.
func (s *Service) Get(ctx context.Context, id int64) (*Summary, error) {
	return s.orders.GetSummary(ctx, id)
}

// Update locates an order by id and order number (both must match) and
// applies the optional order type and status changes. The type change is
// validated against the restaurant's capabilities exactly as on creation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Order, error) {
	o, err := s.orders.GetByIDAndNumber(ctx, id, req.Number)
	if err != nil {
		return nil, err
	}

	var typ *Type
	if req.Type != "" {
		rest, err := s.restaurants.GetByID(ctx, o.RestaurantID)
		if err != nil {
			return nil, errors.Wrap(err, "get restaurant")
		}
		t, err := s.checkType(rest, req.Type)
		if err != nil {
			return nil, err
		}
		typ = &t
	}

	var status *Status
	if req.Status != "" {
		st, ok := ParseStatus(req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status = &st
	}

	if typ == nil && status == nil {
		return o, nil
	}

	updated, err := s.orders.UpdateFields(ctx, id, typ, status)
	if err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return updated, nil
}

// Delete removes an order by id and returns its identifying fields. Line
// items are removed with it.
func (s *Service) Delete(ctx context.Context, id int64) (*Order, error) {
	return s.orders.Delete(ctx, id)
}

// generateNumber produces an order number: the letter O followed by seven
// digits drawn uniformly from [1000000, 9999999].
func generateNumber() string {
	return fmt.Sprintf("O%d", 1_000_000+rand.IntN(9_000_000))
}
