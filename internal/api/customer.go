package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/feastline/feastline/internal/domain/customer"
)

type customerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	ImageURL    string `json:"image_url,omitempty"`
}

// customerJSON is the customer shape returned by the API. The password hash
// is never serialized.
type customerJSON struct {
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

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
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

	c := &customer.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		ImageURL:     req.ImageURL,
	}
	if err := h.customers.Create(r.Context(), c); err != nil {
		if errors.Is(err, customer.ErrEmailTaken) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, struct {
		Message  string       `json:"message"`
		Customer customerJSON `json:"customer"`
	}{"Customer created successfully", toCustomerJSON(*c)})
}

func (h *Handler) customerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.customers.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "invalid email or password")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, r, http.StatusBadRequest, "invalid email or password")
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message  string       `json:"message"`
		Customer customerJSON `json:"customer"`
	}{"Login successful", toCustomerJSON(*c)})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]customerJSON, len(customers))
	for i, c := range customers {
		out[i] = toCustomerJSON(c)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, toCustomerJSON(*c))
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.DateOfBirth = dob
	// An empty image_url keeps the stored image; updates cannot clear it.
	if req.ImageURL != "" {
		c.ImageURL = req.ImageURL
	}
	// Password changes are optional on update.
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		c.PasswordHash = string(hash)
	}

	if err := h.customers.Update(r.Context(), c); err != nil {
		if errors.Is(err, customer.ErrEmailTaken) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Message  string       `json:"message"`
		Customer customerJSON `json:"customer"`
	}{"Customer updated", toCustomerJSON(*c)})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Customer deleted"})
}

func toCustomerJSON(c customer.Customer) customerJSON {
	return customerJSON{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		DateOfBirth: c.DateOfBirth.Format("2006-01-02"),
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
