package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(store *memCart, sessionID string) *gin.Engine {
	ctrl := NewCartController(services.NewCartService(store))
	r := gin.New()
	r.Use(withSession(sessionID))
	r.GET("/cart", ctrl.GetCart)
	r.POST("/cart", ctrl.AddItem)
	r.DELETE("/cart/:id", ctrl.RemoveItem)
	return r
}

func TestCartHandlers(t *testing.T) {
	store := &memCart{}
	router := newCartRouter(store, "sess_cart")

	add := postJSON(t, router, "/cart", `{"product_flavor":"Melancia","quantity":2}`)
	require.Equal(t, http.StatusCreated, add.Code, add.Body.String())

	var added struct {
		Data models.CartItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(add.Body.Bytes(), &added))
	assert.Equal(t, models.GummyHair.Name, added.Data.ProductName)
	assert.Equal(t, "Melancia", added.Data.ProductFlavor)

	bad := postJSON(t, router, "/cart", `{"product_flavor":"Uva"}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, get.Code)

	var cart struct {
		Data models.Cart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &cart))
	assert.Equal(t, 2, cart.Data.Count)
	assert.Equal(t, "39.74", cart.Data.Total.StringFixed(2))

	other := httptest.NewRecorder()
	newCartRouter(store, "sess_other").ServeHTTP(other, httptest.NewRequest(http.MethodDelete, "/cart/"+added.Data.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, other.Code)
	assert.Len(t, store.items, 1)
}
