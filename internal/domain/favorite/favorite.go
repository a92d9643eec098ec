package favorite

import "context"

// Repository defines persistence operations for customer favorites.
// A favorite is a (customer, restaurant) pair; adding an existing pair is a
// no-op and removing a missing pair is not an error.
type Repository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]int64, error)
	Add(ctx context.Context, customerID, restaurantID int64) error
	Remove(ctx context.Context, customerID, restaurantID int64) error
}
