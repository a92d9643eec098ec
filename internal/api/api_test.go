package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/feastline/feastline/internal/domain/customer"
	"github.com/feastline/feastline/internal/domain/dish"
	"github.com/feastline/feastline/internal/domain/favorite"
	"github.com/feastline/feastline/internal/domain/order"
	"github.com/feastline/feastline/internal/domain/owner"
	"github.com/feastline/feastline/internal/domain/restaurant"
)

// --- Mock repositories ---

type mockCustomerRepo struct {
	byID    map[int64]*customer.Customer
	byEmail map[string]*customer.Customer
	created *customer.Customer
}

func (m *mockCustomerRepo) List(_ context.Context) ([]customer.Customer, error) {
	var out []customer.Customer
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, customer.ErrNotFound
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, email string) (*customer.Customer, error) {
	if c, ok := m.byEmail[email]; ok {
		return c, nil
	}
	return nil, customer.ErrNotFound
}

func (m *mockCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	if _, ok := m.byEmail[c.Email]; ok {
		return customer.ErrEmailTaken
	}
	c.ID = 100
	m.created = c
	return nil
}

func (m *mockCustomerRepo) Update(_ context.Context, c *customer.Customer) error { return nil }

func (m *mockCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return customer.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type mockOwnerRepo struct {
	byID    map[int64]*owner.Owner
	byEmail map[string]*owner.Owner
}

func (m *mockOwnerRepo) List(_ context.Context) ([]owner.Owner, error) { return nil, nil }

func (m *mockOwnerRepo) GetByID(_ context.Context, id int64) (*owner.Owner, error) {
	if o, ok := m.byID[id]; ok {
		return o, nil
	}
	return nil, owner.ErrNotFound
}

func (m *mockOwnerRepo) GetByEmail(_ context.Context, email string) (*owner.Owner, error) {
	if o, ok := m.byEmail[email]; ok {
		return o, nil
	}
	return nil, owner.ErrNotFound
}

func (m *mockOwnerRepo) Create(_ context.Context, o *owner.Owner) error { return nil }
func (m *mockOwnerRepo) Update(_ context.Context, o *owner.Owner) error { return nil }
func (m *mockOwnerRepo) Delete(_ context.Context, id int64) error       { return nil }

type mockRestaurantRepo struct {
	byID map[int64]*restaurant.Restaurant
}

func (m *mockRestaurantRepo) List(_ context.Context) ([]restaurant.Restaurant, error) {
	var out []restaurant.Restaurant
	for _, r := range m.byID {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRestaurantRepo) GetByID(_ context.Context, id int64) (*restaurant.Restaurant, error) {
	if r, ok := m.byID[id]; ok {
		return r, nil
	}
	return nil, restaurant.ErrNotFound
}

func (m *mockRestaurantRepo) Create(_ context.Context, r *restaurant.Restaurant) error {
	r.ID = 10
	return nil
}

func (m *mockRestaurantRepo) Update(_ context.Context, r *restaurant.Restaurant) error { return nil }
func (m *mockRestaurantRepo) Delete(_ context.Context, id int64) error                 { return nil }

type mockDishRepo struct {
	byID    map[int64]dish.Dish
	updated *dish.Dish
}

func (m *mockDishRepo) List(_ context.Context) ([]dish.Dish, error) { return nil, nil }

func (m *mockDishRepo) ListByRestaurant(_ context.Context, _ int64) ([]dish.Dish, error) {
	return nil, nil
}

func (m *mockDishRepo) GetByID(_ context.Context, id int64) (*dish.Dish, error) {
	if d, ok := m.byID[id]; ok {
		return &d, nil
	}
	return nil, dish.ErrNotFound
}

func (m *mockDishRepo) GetByIDs(_ context.Context, ids []int64) ([]dish.Dish, error) {
	var out []dish.Dish
	seen := make(map[int64]bool)
	for _, id := range ids {
		if d, ok := m.byID[id]; ok && !seen[id] {
			out = append(out, d)
			seen[id] = true
		}
	}
	return out, nil
}

func (m *mockDishRepo) Create(_ context.Context, d *dish.Dish) error { return nil }
func (m *mockDishRepo) Update(_ context.Context, d *dish.Dish) error {
	m.updated = d
	m.byID[d.ID] = *d
	return nil
}
func (m *mockDishRepo) Delete(_ context.Context, id int64) error     { return nil }

type mockOrderRepo struct {
	lastOrder  *order.Order
	byIDAndNum *order.Order
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = 1
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	m.lastOrder = o
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]order.Summary, error) { return nil, nil }

func (m *mockOrderRepo) GetSummary(_ context.Context, id int64) (*order.Summary, error) {
	if m.byIDAndNum != nil && m.byIDAndNum.ID == id {
		return &order.Summary{
			Order:      *m.byIDAndNum,
			Customer:   order.CustomerSummary{ID: 1, FirstName: "Ava", LastName: "Chen"},
			Restaurant: order.RestaurantSummary{ID: 1, Name: "Trattoria", Address: "12 Harbor St"},
		}, nil
	}
	return nil, &order.NotFoundError{OrderID: id}
}

func (m *mockOrderRepo) GetByIDAndNumber(_ context.Context, id int64, number string) (*order.Order, error) {
	if m.byIDAndNum != nil && m.byIDAndNum.ID == id && m.byIDAndNum.Number == number {
		return m.byIDAndNum, nil
	}
	return nil, &order.NotFoundError{OrderID: id, Number: number}
}

func (m *mockOrderRepo) UpdateFields(_ context.Context, id int64, typ *order.Type, status *order.Status) (*order.Order, error) {
	o := *m.byIDAndNum
	if typ != nil {
		o.Type = *typ
	}
	if status != nil {
		o.Status = *status
	}
	return &o, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) (*order.Order, error) {
	if m.byIDAndNum != nil && m.byIDAndNum.ID == id {
		return m.byIDAndNum, nil
	}
	return nil, &order.NotFoundError{OrderID: id}
}

type mockFavoriteRepo struct {
	pairs map[[2]int64]bool
}

var _ favorite.Repository = (*mockFavoriteRepo)(nil)

func (m *mockFavoriteRepo) ListByCustomer(_ context.Context, customerID int64) ([]int64, error) {
	var out []int64
	for pair := range m.pairs {
		if pair[0] == customerID {
			out = append(out, pair[1])
		}
	}
	return out, nil
}

func (m *mockFavoriteRepo) Add(_ context.Context, customerID, restaurantID int64) error {
	m.pairs[[2]int64{customerID, restaurantID}] = true
	return nil
}

func (m *mockFavoriteRepo) Remove(_ context.Context, customerID, restaurantID int64) error {
	delete(m.pairs, [2]int64{customerID, restaurantID})
	return nil
}

// --- Test fixture ---

type fixture struct {
	mux       *http.ServeMux
	customers *mockCustomerRepo
	dishes    *mockDishRepo
	orders    *mockOrderRepo
	favorites *mockFavoriteRepo
}

func testPasswordHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ava := &customer.Customer{
		ID:           1,
		FirstName:    "Ava",
		LastName:     "Chen",
		Email:        "ava@example.com",
		PasswordHash: testPasswordHash(t, "secret"),
		Phone:        "+1-555-0199",
		Address:      "401 Elm Ave",
		DateOfBirth:  time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	customers := &mockCustomerRepo{
		byID:    map[int64]*customer.Customer{1: ava},
		byEmail: map[string]*customer.Customer{ava.Email: ava},
	}

	restaurants := &mockRestaurantRepo{byID: map[int64]*restaurant.Restaurant{
		1: {ID: 1, OwnerID: 1, Name: "Trattoria", Address: "12 Harbor St", OffersPickup: true, OffersDelivery: true},
		2: {ID: 2, OwnerID: 1, Name: "Pickup Only", Address: "5 Market Ln", OffersPickup: true},
	}}

	dishes := &mockDishRepo{byID: map[int64]dish.Dish{
		1: {ID: 1, RestaurantID: 1, Name: "Pizza", Description: "wood-fired", Price: decimal.RequireFromString("10.00"), Size: "regular"},
		2: {ID: 2, RestaurantID: 1, Name: "Tiramisu", Description: "classic", Price: decimal.RequireFromString("5.50"), Size: "regular", ImageURL: "https://img.example.com/tiramisu.png"},
	}}

	owners := &mockOwnerRepo{
		byID:    map[int64]*owner.Owner{},
		byEmail: map[string]*owner.Owner{},
	}

	orderRepo := &mockOrderRepo{}
	favorites := &mockFavoriteRepo{pairs: map[[2]int64]bool{}}

	h := NewHandler(
		order.NewService(customers, restaurants, dishes, orderRepo),
		customers, owners, restaurants, dishes, favorites,
	)
	mux := http.NewServeMux()
	h.Register(mux)

	return &fixture{
		mux:       mux,
		customers: customers,
		dishes:    dishes,
		orders:    orderRepo,
		favorites: favorites,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
