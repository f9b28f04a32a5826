package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kiyuzo/shop-tcg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_AddIsIdempotent(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createTestUser(t, db, "buyer1", models.RoleBuyer)
	product, _ := seedProductWithListing(t, db, "Charizard", "Pokemon", 1000, 5)

	resp := doJSON(t, app, http.MethodPost, "/api/wishlist", token, map[string]interface{}{"product_id": product.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Second add with the same product: no duplicate
	resp = doJSON(t, app, http.MethodPost, "/api/wishlist", token, map[string]interface{}{"product_id": product.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/wishlist", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]interface{})
	assert.Len(t, items, 1)
}

func TestWishlist_Remove(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createTestUser(t, db, "buyer1", models.RoleBuyer)
	product, _ := seedProductWithListing(t, db, "Charizard", "Pokemon", 1000, 5)

	resp := doJSON(t, app, http.MethodPost, "/api/wishlist", token, map[string]interface{}{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWishlist_UnknownProduct(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createTestUser(t, db, "buyer1", models.RoleBuyer)

	resp := doJSON(t, app, http.MethodPost, "/api/wishlist", token, map[string]interface{}{"product_id": 4242})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
