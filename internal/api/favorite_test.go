package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites_AddListRemove(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/favorites", map[string]any{
		"customer_id":   1,
		"restaurant_id": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Favorite added", decodeBody(t, rec)["message"])

	rec = f.do(t, http.MethodGet, "/api/favorites/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{float64(2)}, decodeBody(t, rec)["restaurant_ids"])

	rec = f.do(t, http.MethodDelete, "/api/favorites", map[string]any{
		"customer_id":   1,
		"restaurant_id": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Favorite removed", decodeBody(t, rec)["message"])

	rec = f.do(t, http.MethodGet, "/api/favorites/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeBody(t, rec)["restaurant_ids"])
}

func TestAddFavorite_MissingIDs(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/favorites", map[string]any{
		"customer_id": 1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "required")
}

func TestListFavorites_EmptyIsNotNull(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/favorites/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeBody(t, rec)["restaurant_ids"])
}
