package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/feastline/feastline/internal/domain/owner"
)

type ownerJSON struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handler) createOwner(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" ||
		req.Phone == "" || req.Address == "" || req.DateOfBirth == "" {
		writeError(w, r, http.StatusBadRequest, "all fields are required")
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	o := &owner.Owner{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		ImageURL:     req.ImageURL,
	}
	if err := h.owners.Create(r.Context(), o); err != nil {
		if errors.Is(err, owner.ErrEmailTaken) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, struct {
		Message string    `json:"message"`
		Owner   ownerJSON `json:"owner"`
	}{"Restaurant owner created", toOwnerJSON(*o)})
}

func (h *Handler) ownerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.owners.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "invalid email or password")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, r, http.StatusBadRequest, "invalid email or password")
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message string    `json:"message"`
		Owner   ownerJSON `json:"owner"`
	}{"Login successful", toOwnerJSON(*o)})
}

func (h *Handler) listOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := h.owners.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]ownerJSON, len(owners))
	for i, o := range owners {
		out[i] = toOwnerJSON(o)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.owners.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant owner not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, toOwnerJSON(*o))
}

func (h *Handler) updateOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Phone == "" || req.Address == "" || req.DateOfBirth == "" {
		writeError(w, r, http.StatusBadRequest, "required fields are missing")
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	o, err := h.owners.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant owner not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	o.FirstName = req.FirstName
	o.LastName = req.LastName
	o.Email = req.Email
	o.Phone = req.Phone
	o.Address = req.Address
	o.DateOfBirth = dob
	// An empty image_url keeps the stored image; updates cannot clear it.
	if req.ImageURL != "" {
		o.ImageURL = req.ImageURL
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		o.PasswordHash = string(hash)
	}

	if err := h.owners.Update(r.Context(), o); err != nil {
		if errors.Is(err, owner.ErrEmailTaken) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message string    `json:"message"`
		Owner   ownerJSON `json:"owner"`
	}{"Restaurant owner updated", toOwnerJSON(*o)})
}

func (h *Handler) deleteOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.owners.Delete(r.Context(), id); err != nil {
		if errors.Is(err, owner.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant owner not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Restaurant owner deleted"})
}

func toOwnerJSON(o owner.Owner) ownerJSON {
	return ownerJSON{
		ID:          o.ID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Phone:       o.Phone,
		Address:     o.Address,
		DateOfBirth: o.DateOfBirth.Format("2006-01-02"),
		ImageURL:    o.ImageURL,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
