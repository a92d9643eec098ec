package order

import "fmt"

// Sentinel errors for order validation and persistence.
var (
	ErrMissingFields = fmt.Errorf("missing required fields or no items in the order")
	ErrInvalidType   = fmt.Errorf("order type must be either delivery or pickup")
	ErrInvalidStatus = fmt.Errorf("status must be one of: pending, processing, out for delivery, delivered, cancelled")

	// ErrDuplicateNumber is reported by the repository when the generated
	// order number collides with an existing order.
	ErrDuplicateNumber = fmt.Errorf("order number already exists")

	// ErrNumberExhausted is returned when every order-number generation
	// attempt collided.
	ErrNumberExhausted = fmt.Errorf("could not generate a unique order number")
)

// CustomerNotFoundError indicates the referenced customer does not exist.
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer with ID: %d not found", e.CustomerID)
}

// RestaurantNotFoundError indicates the referenced restaurant does not exist.
type RestaurantNotFoundError struct {
	RestaurantID int64
}

func (e *RestaurantNotFoundError) Error() string {
	return fmt.Sprintf("restaurant with ID: %d not found", e.RestaurantID)
}

// UnsupportedTypeError indicates the restaurant does not offer the requested
// order type.
type UnsupportedTypeError struct {
	RestaurantID int64
	Type         Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("restaurant ID: %d doesn't offer %s", e.RestaurantID, e.Type)
}

// InvalidDishError indicates a requested dish id has no matching dish in the
// restaurant catalog.
type InvalidDishError struct {
	DishID int64
}

func (e *InvalidDishError) Error() string {
	return fmt.Sprintf("dish ID: %d is invalid", e.DishID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	DishID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity should be greater than zero for dish %d", e.DishID)
}

// NotFoundError indicates no order matched the given identifiers. Number is
// set on the update path, where both the id and the order number must match.
type NotFoundError struct {
	OrderID int64
	Number  string
}

func (e *NotFoundError) Error() string {
	if e.Number != "" {
		return fmt.Sprintf("no entry found for ID: %d and order number: %s", e.OrderID, e.Number)
	}
	return fmt.Sprintf("no order found with ID: %d", e.OrderID)
}
