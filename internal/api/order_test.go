package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastline/feastline/internal/domain/order"
)

func TestCreateOrder_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id":   1,
		"restaurant_id": 1,
		"order_type":    "delivery",
		"order_items": []map[string]any{
			{"dish_id": 1, "quantity": 2},
			{"dish_id": 2, "quantity": 1},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order placed successfully", body["message"])
	assert.Equal(t, float64(1), body["order_id"])
	assert.Equal(t, 25.5, body["total"])
	assert.Regexp(t, `^O\d{7}$`, body["order_number"])
	assert.Len(t, body["items"], 2)

	require.NotNil(t, f.orders.lastOrder)
	assert.Equal(t, order.StatusPending, f.orders.lastOrder.Status)
}

func TestCreateOrder_MissingFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": 1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "missing required fields")
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id":   42,
		"restaurant_id": 1,
		"order_type":    "pickup",
		"order_items":   []map[string]any{{"dish_id": 1, "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "customer with ID: 42 not found", decodeBody(t, rec)["error"])
}

func TestCreateOrder_DeliveryNotOffered(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id":   1,
		"restaurant_id": 2,
		"order_type":    "delivery",
		"order_items":   []map[string]any{{"dish_id": 1, "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "doesn't offer delivery")
}

func TestCreateOrder_InvalidDish(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id":   1,
		"restaurant_id": 1,
		"order_type":    "pickup",
		"order_items":   []map[string]any{{"dish_id": 404, "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "dish ID: 404 is invalid", decodeBody(t, rec)["error"])
}

func TestCreateOrder_FractionalQuantityRejected(t *testing.T) {
	f := newFixture(t)

	// 1.5 cannot decode into an int quantity; the request fails before any
	// domain validation runs.
	rec := f.doRaw(http.MethodPost, "/api/orders", `{
		"customer_id": 1,
		"restaurant_id": 1,
		"order_type": "pickup",
		"order_items": [{"dish_id": 1, "quantity": 1.5}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "invalid request body")
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/orders/9", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no order found with ID: 9", decodeBody(t, rec)["error"])
}

func TestGetOrder_Success(t *testing.T) {
	f := newFixture(t)
	f.orders.byIDAndNum = &order.Order{
		ID: 9, CustomerID: 1, RestaurantID: 1,
		Type: order.TypePickup, Number: "O1234567", Status: order.StatusPending,
	}

	rec := f.do(t, http.MethodGet, "/api/orders/9", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "O1234567", body["order_number"])

	cust, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ava", cust["first_name"])

	rest, ok := body["restaurant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Trattoria", rest["name"])
}

func TestUpdateOrder_StatusStoredLowercase(t *testing.T) {
	f := newFixture(t)
	f.orders.byIDAndNum = &order.Order{
		ID: 9, CustomerID: 1, RestaurantID: 1,
		Type: order.TypePickup, Number: "O1234567", Status: order.StatusPending,
	}

	rec := f.do(t, http.MethodPut, "/api/orders/9", map[string]any{
		"order_number": "O1234567",
		"status":       "DELIVERED",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order updated", body["message"])

	o, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "delivered", o["status"])
}

func TestUpdateOrder_WrongNumber(t *testing.T) {
	f := newFixture(t)
	f.orders.byIDAndNum = &order.Order{
		ID: 9, CustomerID: 1, RestaurantID: 1,
		Type: order.TypePickup, Number: "O1234567", Status: order.StatusPending,
	}

	rec := f.do(t, http.MethodPut, "/api/orders/9", map[string]any{
		"order_number": "O9999999",
		"status":       "delivered",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "no entry found for ID: 9")
}

func TestDeleteOrder_Success(t *testing.T) {
	f := newFixture(t)
	f.orders.byIDAndNum = &order.Order{
		ID: 9, CustomerID: 1, RestaurantID: 1,
		Type: order.TypePickup, Number: "O1234567", Status: order.StatusPending,
	}

	rec := f.do(t, http.MethodDelete, "/api/orders/9", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order deleted", body["message"])
	assert.Equal(t, "O1234567", body["order_number"])
}

func TestOrderPath_InvalidID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/orders/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "invalid id")
}

// doRaw sends a hand-written JSON body that the typed helper would mangle,
// for example fractional numbers.
func (f *fixture) doRaw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}
