// Package api contains the HTTP handlers for the REST surface. Handlers are
// thin: they decode JSON, delegate to the domain layer, and map domain errors
// to status codes.
package api

import (
	"net/http"

	"github.com/feastline/feastline/internal/domain/customer"
	"github.com/feastline/feastline/internal/domain/dish"
	"github.com/feastline/feastline/internal/domain/favorite"
	"github.com/feastline/feastline/internal/domain/order"
	"github.com/feastline/feastline/internal/domain/owner"
	"github.com/feastline/feastline/internal/domain/restaurant"
)

// Handler bundles the API endpoints and their domain dependencies.
type Handler struct {
	orders      *order.Service
	customers   customer.Repository
	owners      owner.Repository
	restaurants restaurant.Repository
	dishes      dish.Repository
	favorites   favorite.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	orders *order.Service,
	customers customer.Repository,
	owners owner.Repository,
	restaurants restaurant.Repository,
	dishes dish.Repository,
	favorites favorite.Repository,
) *Handler {
	return &Handler{
		orders:      orders,
		customers:   customers,
		owners:      owners,
		restaurants: restaurants,
		dishes:      dishes,
		favorites:   favorites,
	}
}

// Register attaches every API route to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.updateOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrder)

	mux.HandleFunc("POST /api/customers", h.createCustomer)
	mux.HandleFunc("POST /api/customers/login", h.customerLogin)
	mux.HandleFunc("GET /api/customers", h.listCustomers)
	mux.HandleFunc("GET /api/customers/{id}", h.getCustomer)
	mux.HandleFunc("PUT /api/customers/{id}", h.updateCustomer)
	mux.HandleFunc("DELETE /api/customers/{id}", h.deleteCustomer)

	mux.HandleFunc("POST /api/restaurantOwners", h.createOwner)
	mux.HandleFunc("POST /api/restaurantOwners/login", h.ownerLogin)
	mux.HandleFunc("GET /api/restaurantOwners", h.listOwners)
	mux.HandleFunc("GET /api/restaurantOwners/{id}", h.getOwner)
	mux.HandleFunc("PUT /api/restaurantOwners/{id}", h.updateOwner)
	mux.HandleFunc("DELETE /api/restaurantOwners/{id}", h.deleteOwner)

	mux.HandleFunc("POST /api/restaurants", h.createRestaurant)
	mux.HandleFunc("GET /api/restaurants", h.listRestaurants)
	mux.HandleFunc("GET /api/restaurants/{id}", h.getRestaurant)
	mux.HandleFunc("PUT /api/restaurants/{id}", h.updateRestaurant)
	mux.HandleFunc("DELETE /api/restaurants/{id}", h.deleteRestaurant)

	mux.HandleFunc("POST /api/dishes", h.createDish)
	mux.HandleFunc("GET /api/dishes", h.listDishes)
	mux.HandleFunc("GET /api/dishes/{id}", h.getDish)
	mux.HandleFunc("PUT /api/dishes/{id}", h.updateDish)
	mux.HandleFunc("DELETE /api/dishes/{id}", h.deleteDish)

	mux.HandleFunc("GET /api/favorites/{customerID}", h.listFavorites)
	mux.HandleFunc("POST /api/favorites", h.addFavorite)
	mux.HandleFunc("DELETE /api/favorites", h.removeFavorite)
}
