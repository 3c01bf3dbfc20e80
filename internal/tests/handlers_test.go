package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpapi "fooday/internal/api/http"
	"fooday/internal/domain"
	"fooday/internal/service"
	"fooday/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := storage.NewMemoryStore()
	assert.NoError(t, storage.Seed(context.Background(), store))
	sessions := storage.NewMemorySessionStore()
	qr := service.DefaultQRGenerator{BaseURL: "http://localhost:8080"}

	handler := httpapi.NewHandler(
		service.NewAuthService(store, sessions),
		service.NewCartService(store, sessions),
		service.NewOrderService(store, store, sessions, nil, qr),
		service.NewStatusService(store, nil),
		service.NewRestaurantService(store),
		sessions,
	)
	return httpapi.NewRouter(handler)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func loginAs(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	resp := doRequest(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "ignored",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var session struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	return session.Token
}

func TestHandlers_Health(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}

func TestHandlers_Login(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	loginAs(t, router, "alex@example.com")
}

func TestHandlers_Register(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, "POST", "/api/auth/register", "", map[string]string{
		"name":  "No Address",
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, router, "POST", "/api/auth/register", "", map[string]string{
		"name":    "New User",
		"email":   "new@example.com",
		"address": "1 New Street",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	// Same exact email again conflicts.
	resp = doRequest(t, router, "POST", "/api/auth/register", "", map[string]string{
		"name":    "New User",
		"email":   "new@example.com",
		"address": "1 New Street",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandlers_BrowseRestaurants(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, "GET", "/api/restaurants", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var restaurants []domain.Restaurant
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &restaurants))
	assert.Len(t, restaurants, 4) // The Green Bowl starts inactive.

	resp = doRequest(t, router, "GET", "/api/restaurants?search=sushi", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &restaurants))
	if assert.Len(t, restaurants, 1) {
		assert.Equal(t, "Sakura Sushi", restaurants[0].Name)
	}

	resp = doRequest(t, router, "GET", "/api/restaurants/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func browseRestaurants(t *testing.T, router http.Handler) []domain.Restaurant {
	t.Helper()
	resp := doRequest(t, router, "GET", "/api/restaurants", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var restaurants []domain.Restaurant
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &restaurants))
	return restaurants
}

func TestHandlers_CartAndOrderFlow(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, "GET", "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	token := loginAs(t, router, "alex@example.com")
	restaurants := browseRestaurants(t, router)
	burger := restaurants[0]
	pizza := restaurants[1]

	resp = doRequest(t, router, "POST", "/api/cart/items", token, map[string]string{
		"restaurant_id": burger.ID,
		"menu_item_id":  burger.MenuItems[0].ID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var cart struct {
		Cart      domain.Cart `json:"cart"`
		Subtotal  float64     `json:"subtotal"`
		ItemCount int         `json:"item_count"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.ItemCount)
	assert.InDelta(t, burger.MenuItems[0].Price, cart.Subtotal, 0.001)

	// Adding from a second restaurant parks the item and conflicts.
	resp = doRequest(t, router, "POST", "/api/cart/items", token, map[string]string{
		"restaurant_id": pizza.ID,
		"menu_item_id":  pizza.MenuItems[0].ID,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "pending_item")

	resp = doRequest(t, router, "POST", "/api/cart/conflict/replace", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, pizza.Name, cart.Cart.RestaurantName)

	resp = doRequest(t, router, "POST", "/api/orders", token, map[string]string{
		"payment_method": "Credit Card",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var placed struct {
		domain.Order
		StatusView httpapi.StatusView `json:"status_view"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &placed))
	assert.Equal(t, domain.StatusPlaced, placed.Status)
	assert.InDelta(t, placed.Subtotal+placed.DeliveryFee, placed.Total, 0.001)
	assert.Equal(t, "Order Placed", placed.StatusView.DisplayText)

	// The new order heads the listing, ahead of the seeded history.
	resp = doRequest(t, router, "GET", "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var orders []struct {
		domain.Order
		StatusView httpapi.StatusView `json:"status_view"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &orders))
	if assert.Len(t, orders, 3) {
		assert.Equal(t, placed.ID, orders[0].ID)
	}

	resp = doRequest(t, router, "GET", "/api/orders/current", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)

	resp = doRequest(t, router, "GET", "/api/orders/past", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	resp = doRequest(t, router, "GET", "/api/orders/"+placed.ID+"/qrcode", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))

	// Placing again with the now empty cart is rejected.
	resp = doRequest(t, router, "POST", "/api/orders", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHandlers_AdminEndpoints(t *testing.T) {
	router := newTestRouter(t)
	userToken := loginAs(t, router, "alex@example.com")
	adminToken := loginAs(t, router, "admin@foodapp.com")
	restaurants := browseRestaurants(t, router)
	target := restaurants[0]

	resp := doRequest(t, router, "POST", "/api/admin/restaurants/"+target.ID+"/toggle", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, router, "POST", "/api/admin/restaurants/"+target.ID+"/toggle", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"is_active":false`)

	assert.Len(t, browseRestaurants(t, router), 3)

	resp = doRequest(t, router, "GET", "/api/admin/restaurants", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var all []domain.Restaurant
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &all))
	assert.Len(t, all, 5)

	resp = doRequest(t, router, "GET", "/api/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var orders []struct {
		domain.Order
		StatusView httpapi.StatusView `json:"status_view"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &orders))
	if !assert.Len(t, orders, 2) {
		return
	}
	preparing := orders[0] // Newest seeded order is still preparing.
	assert.Equal(t, domain.StatusPreparing, preparing.Status)

	resp = doRequest(t, router, "POST", "/api/admin/orders/"+preparing.ID+"/advance", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), string(domain.StatusOutForDelivery))

	resp = doRequest(t, router, "PUT", "/api/admin/orders/"+preparing.ID+"/status", adminToken, map[string]string{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), string(domain.StatusCancelled))

	resp = doRequest(t, router, "PUT", "/api/admin/orders/"+preparing.ID+"/status", adminToken, map[string]string{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, router, "POST", "/api/admin/orders/ghost/advance", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(t, router, "GET", "/api/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var users []domain.User
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}
