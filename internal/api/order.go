package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/feastline/feastline/internal/domain/order"
)

type orderItemRequest struct {
	DishID   int64    `json:"dish_id"`
	Quantity int      `json:"quantity"`
	Size     string   `json:"size,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

type createOrderRequest struct {
	CustomerID   int64              `json:"customer_id"`
	RestaurantID int64              `json:"restaurant_id"`
	OrderType    string             `json:"order_type"`
	OrderItems   []orderItemRequest `json:"order_items"`
}

type orderItemDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type createOrderResponse struct {
	Message     string            `json:"message"`
	OrderID     int64             `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	Total       float64           `json:"total"`
	Items       []orderItemDetail `json:"items"`
}

type customerSummaryJSON struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type restaurantSummaryJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type orderJSON struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	RestaurantID int64     `json:"restaurant_id"`
	Status       string    `json:"status"`
	OrderNumber  string    `json:"order_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Total        float64   `json:"total"`
	OrderType    string    `json:"order_type"`
}

type orderSummaryJSON struct {
	orderJSON
	Customer   customerSummaryJSON   `json:"customer"`
	Restaurant restaurantSummaryJSON `json:"restaurant"`
}

type updateOrderRequest struct {
	OrderNumber string `json:"order_number"`
	OrderType   string `json:"order_type,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]order.ItemRequest, len(req.OrderItems))
	for i, it := range req.OrderItems {
		items[i] = order.ItemRequest{
			DishID:   it.DishID,
			Quantity: it.Quantity,
			Size:     it.Size,
		}
		if it.Price != nil {
			p := decimal.NewFromFloat(*it.Price)
			items[i].Price = &p
		}
	}

	result, err := h.orders.Create(r.Context(), order.CreateRequest{
		CustomerID:   req.CustomerID,
		RestaurantID: req.RestaurantID,
		Type:         req.OrderType,
		Items:        items,
	})
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	respItems := make([]orderItemDetail, len(result.Items))
	for i, it := range result.Items {
		respItems[i] = orderItemDetail{
			ID:          it.DishID,
			Name:        it.Name,
			Description: it.Description,
			Size:        it.Size,
			Price:       it.Price.InexactFloat64(),
			Quantity:    it.Quantity,
		}
	}

	writeJSON(w, r, http.StatusCreated, createOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     result.Order.ID,
		OrderNumber: result.Order.Number,
		Total:       result.Order.Total.InexactFloat64(),
		Items:       respItems,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.orders.List(r.Context())
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	out := make([]orderSummaryJSON, len(summaries))
	for i, s := range summaries {
		out[i] = toOrderSummaryJSON(s)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderSummaryJSON(*s))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.Update(r.Context(), id, order.UpdateRequest{
		Number: req.OrderNumber,
		Type:   req.OrderType,
		Status: req.Status,
	})
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message string    `json:"message"`
		Order   orderJSON `json:"order"`
	}{
		Message: "Order updated",
		Order:   toOrderJSON(*o),
	})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.orders.Delete(r.Context(), id)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message     string `json:"message"`
		OrderID     int64  `json:"order_id"`
		OrderNumber string `json:"order_number"`
	}{
		Message:     "Order deleted",
		OrderID:     o.ID,
		OrderNumber: o.Number,
	})
}

// writeOrderError maps domain order errors to HTTP statuses: validation
// failures are 400, missing entities 404, everything else 500 with the
// underlying message.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		customerErr   *order.CustomerNotFoundError
		restaurantErr *order.RestaurantNotFoundError
		notFoundErr   *order.NotFoundError
		typeErr       *order.UnsupportedTypeError
		dishErr       *order.InvalidDishError
		quantityErr   *order.InvalidQuantityError
	)
	switch {
	case errors.Is(err, order.ErrMissingFields),
		errors.Is(err, order.ErrInvalidType),
		errors.Is(err, order.ErrInvalidStatus),
		errors.As(err, &typeErr),
		errors.As(err, &dishErr),
		errors.As(err, &quantityErr):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &customerErr),
		errors.As(err, &restaurantErr),
		errors.As(err, &notFoundErr):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}

func toOrderJSON(o order.Order) orderJSON {
	return orderJSON{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		RestaurantID: o.RestaurantID,
		Status:       string(o.Status),
		OrderNumber:  o.Number,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Total:        o.Total.InexactFloat64(),
		OrderType:    string(o.Type),
	}
}

func toOrderSummaryJSON(s order.Summary) orderSummaryJSON {
	return orderSummaryJSON{
		orderJSON: toOrderJSON(s.Order),
		Customer: customerSummaryJSON{
			ID:        s.Customer.ID,
			FirstName: s.Customer.FirstName,
			LastName:  s.Customer.LastName,
		},
		Restaurant: restaurantSummaryJSON{
			ID:      s.Restaurant.ID,
			Name:    s.Restaurant.Name,
			Address: s.Restaurant.Address,
		},
	}
}
