package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers", map[string]any{
		"first_name":    "Noah",
		"last_name":     "Patel",
		"email":         "noah@example.com",
		"password":      "hunter2hunter2",
		"phone":         "+1-555-0142",
		"address":       "88 Birch Rd",
		"date_of_birth": "1989-11-02",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Customer created successfully", body["message"])

	c, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "noah@example.com", c["email"])
	assert.Equal(t, "1989-11-02", c["date_of_birth"])
	assert.NotContains(t, c, "password")
	assert.NotContains(t, c, "password_hash")

	// The stored hash must verify but never equal the raw password.
	require.NotNil(t, f.customers.created)
	assert.NotEqual(t, "hunter2hunter2", f.customers.created.PasswordHash)
}

func TestCreateCustomer_MissingFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Noah",
		"email":      "noah@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "all fields are required", decodeBody(t, rec)["error"])
}

func TestCreateCustomer_EmailTaken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers", map[string]any{
		"first_name":    "Ava",
		"last_name":     "Chen",
		"email":         "ava@example.com",
		"password":      "secret",
		"phone":         "+1-555-0199",
		"address":       "401 Elm Ave",
		"date_of_birth": "1994-03-12",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "email is already in use")
}

func TestCreateCustomer_BadDateOfBirth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers", map[string]any{
		"first_name":    "Noah",
		"last_name":     "Patel",
		"email":         "noah@example.com",
		"password":      "hunter2hunter2",
		"phone":         "+1-555-0142",
		"address":       "88 Birch Rd",
		"date_of_birth": "02/11/1989",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "date_of_birth")
}

func TestCustomerLogin_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
		"email":    "ava@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])

	c, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ava", c["first_name"])
}

func TestCustomerLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
		"email":    "ava@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, rec)["error"])
}

func TestCustomerLogin_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	// Same message as a wrong password; the response must not reveal
	// whether the account exists.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, rec)["error"])
}

func TestGetCustomer_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/customers/77", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "customer not found", decodeBody(t, rec)["error"])
}

func TestDeleteCustomer_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/api/customers/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Customer deleted", decodeBody(t, rec)["message"])
}
