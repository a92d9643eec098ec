package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/feastline/feastline/internal/domain/dish"
)

type dishRequest struct {
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Size         string  `json:"size,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
}

type dishJSON struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Size         string    `json:"size"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RestaurantID == 0 || req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "restaurant_id and name are required")
		return
	}
	if req.Price <= 0 {
		writeError(w, r, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	size := req.Size
	if size == "" {
		size = "regular"
	}
	d := &dish.Dish{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        decimal.NewFromFloat(req.Price),
		Size:         size,
		ImageURL:     req.ImageURL,
	}
	if err := h.dishes.Create(r.Context(), d); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, struct {
		Message string   `json:"message"`
		Dish    dishJSON `json:"dish"`
	}{"Dish created", toDishJSON(*d)})
}

// listDishes returns the full catalog, or one restaurant's catalog when the
// restaurant_id query parameter is present.
func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request) {
	var (
		dishes []dish.Dish
		err    error
	)
	if raw := r.URL.Query().Get("restaurant_id"); raw != "" {
		restaurantID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			writeError(w, r, http.StatusBadRequest, "invalid restaurant_id")
			return
		}
		dishes, err = h.dishes.ListByRestaurant(r.Context(), restaurantID)
	} else {
		dishes, err = h.dishes.List(r.Context())
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]dishJSON, len(dishes))
	for i, d := range dishes {
		out[i] = toDishJSON(d)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.dishes.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, dish.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "dish not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, toDishJSON(*d))
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dishRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price <= 0 {
		writeError(w, r, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	d, err := h.dishes.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, dish.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "dish not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	d.Name = req.Name
	d.Description = req.Description
	d.Price = decimal.NewFromFloat(req.Price)
	if req.Size != "" {
		d.Size = req.Size
	}
	// An empty image_url keeps the stored image; updates cannot clear it.
	if req.ImageURL != "" {
		d.ImageURL = req.ImageURL
	}

	if err := h.dishes.Update(r.Context(), d); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message string   `json:"message"`
		Dish    dishJSON `json:"dish"`
	}{"Dish updated", toDishJSON(*d)})
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.dishes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, dish.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "dish not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Dish deleted"})
}

func toDishJSON(d dish.Dish) dishJSON {
	return dishJSON{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price.InexactFloat64(),
		Size:         d.Size,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
