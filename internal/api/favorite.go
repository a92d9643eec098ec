package api

import "net/http"

type favoriteRequest struct {
	CustomerID   int64 `json:"customer_id"`
	RestaurantID int64 `json:"restaurant_id"`
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "customerID")
	if !ok {
		return
	}

	ids, err := h.favorites.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, r, http.StatusOK, struct {
		RestaurantIDs []int64 `json:"restaurant_ids"`
	}{ids})
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CustomerID == 0 || req.RestaurantID == 0 {
		writeError(w, r, http.StatusBadRequest, "customer_id and restaurant_id are required")
		return
	}

	if err := h.favorites.Add(r.Context(), req.CustomerID, req.RestaurantID); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusCreated, struct {
		Message string `json:"message"`
	}{"Favorite added"})
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CustomerID == 0 || req.RestaurantID == 0 {
		writeError(w, r, http.StatusBadRequest, "customer_id and restaurant_id are required")
		return
	}

	if err := h.favorites.Remove(r.Context(), req.CustomerID, req.RestaurantID); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Favorite removed"})
}
