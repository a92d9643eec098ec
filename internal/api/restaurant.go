package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/feastline/feastline/internal/domain/restaurant"
)

type restaurantRequest struct {
	OwnerID        int64   `json:"owner_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Description    string  `json:"description,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	OffersPickup   bool    `json:"offers_pickup"`
	OffersDelivery bool    `json:"offers_delivery"`
	ImageURL       string  `json:"image_url,omitempty"`
}

type restaurantJSON struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"owner_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Description    string    `json:"description"`
	Rating         float64   `json:"rating"`
	OffersPickup   bool      `json:"offers_pickup"`
	OffersDelivery bool      `json:"offers_delivery"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// validateRestaurant enforces the required fields and that at least one
// fulfilment option is offered.
func validateRestaurant(req restaurantRequest) string {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return "name, email, phone and address are required"
	}
	if !req.OffersPickup && !req.OffersDelivery {
		return "restaurant must offer at least one of pickup or delivery"
	}
	return ""
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OwnerID == 0 {
		writeError(w, r, http.StatusBadRequest, "owner_id is required")
		return
	}
	if msg := validateRestaurant(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	rest := &restaurant.Restaurant{
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Description:    req.Description,
		Rating:         decimal.NewFromFloat(req.Rating),
		OffersPickup:   req.OffersPickup,
		OffersDelivery: req.OffersDelivery,
		ImageURL:       req.ImageURL,
	}
	if err := h.restaurants.Create(r.Context(), rest); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, struct {
		Message    string         `json:"message"`
		Restaurant restaurantJSON `json:"restaurant"`
	}{"Restaurant created", toRestaurantJSON(*rest)})
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]restaurantJSON, len(restaurants))
	for i, rest := range restaurants {
		out[i] = toRestaurantJSON(rest)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rest, err := h.restaurants.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, toRestaurantJSON(*rest))
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req restaurantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateRestaurant(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	rest, err := h.restaurants.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	rest.Name = req.Name
	rest.Email = req.Email
	rest.Phone = req.Phone
	rest.Address = req.Address
	rest.Description = req.Description
	rest.Rating = decimal.NewFromFloat(req.Rating)
	rest.OffersPickup = req.OffersPickup
	rest.OffersDelivery = req.OffersDelivery
	// An empty image_url keeps the stored image; updates cannot clear it.
	if req.ImageURL != "" {
		rest.ImageURL = req.ImageURL
	}

	if err := h.restaurants.Update(r.Context(), rest); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message    string         `json:"message"`
		Restaurant restaurantJSON `json:"restaurant"`
	}{"Restaurant updated", toRestaurantJSON(*rest)})
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.restaurants.Delete(r.Context(), id); err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Restaurant deleted"})
}

func toRestaurantJSON(rest restaurant.Restaurant) restaurantJSON {
	return restaurantJSON{
		ID:             rest.ID,
		OwnerID:        rest.OwnerID,
		Name:           rest.Name,
		Email:          rest.Email,
		Phone:          rest.Phone,
		Address:        rest.Address,
		Description:    rest.Description,
		Rating:         rest.Rating.InexactFloat64(),
		OffersPickup:   rest.OffersPickup,
		OffersDelivery: rest.OffersDelivery,
		ImageURL:       rest.ImageURL,
		CreatedAt:      rest.CreatedAt,
		UpdatedAt:      rest.UpdatedAt,
	}
}
