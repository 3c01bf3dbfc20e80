package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fooday/internal/domain"
	"fooday/internal/service"
)

type Handler struct {
	Auth        *service.AuthService
	Cart        *service.CartService
	Orders      *service.OrderService
	Status      *service.StatusService
	Restaurants *service.RestaurantService
	Sessions    service.SessionStore
}

func NewHandler(auth *service.AuthService, cart *service.CartService, orders *service.OrderService, status *service.StatusService, restaurants *service.RestaurantService, sessions service.SessionStore) *Handler {
	return &Handler{
		Auth:        auth,
		Cart:        cart,
		Orders:      orders,
		Status:      status,
		Restaurants: restaurants,
		Sessions:    sessions,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/profile", h.updateProfile).Methods("PUT")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/conflict/replace", h.resolveConflictReplace).Methods("POST")
	r.HandleFunc("/api/cart/conflict/cancel", h.resolveConflictCancel).Methods("POST")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/current", h.listCurrentOrders).Methods("GET")
	r.HandleFunc("/api/orders/past", h.listPastOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/admin/restaurants", h.adminListRestaurants).Methods("GET")
	r.HandleFunc("/api/admin/restaurants/{id}/toggle", h.adminToggleRestaurant).Methods("POST")
	r.HandleFunc("/api/admin/orders", h.adminListOrders).Methods("GET")
	r.HandleFunc("/api/admin/orders/{id}/advance", h.adminAdvanceOrder).Methods("POST")
	r.HandleFunc("/api/admin/orders/{id}/status", h.adminSetOrderStatus).Methods("PUT")
	r.HandleFunc("/api/admin/users", h.adminListUsers).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "fooday",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUnknownEmail), errors.Is(err, service.ErrNotLoggedIn):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// sessionFrom resolves the caller's session from the bearer token (or the
// X-Session-Token header). Missing or stale tokens yield nil, which the
// services treat as logged out.
func (h *Handler) sessionFrom(r *http.Request) *domain.Session {
	token := r.Header.Get("X-Session-Token")
	if auth := r.Header.Get("Authorization"); auth != "" {
		if rest, ok := strings.CutPrefix(auth, "Bearer "); ok {
			token = rest
		}
	}
	if token == "" {
		return nil
	}
	session, err := h.Sessions.GetSession(r.Context(), token)
	if err != nil {
		return nil
	}
	return session
}

func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) *domain.Session {
	session := h.sessionFrom(r)
	if !session.LoggedIn() {
		http.Error(w, service.ErrNotLoggedIn.Error(), http.StatusUnauthorized)
		return nil
	}
	return session
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) *domain.Session {
	session := h.sessionFrom(r)
	if !session.LoggedIn() {
		http.Error(w, service.ErrNotLoggedIn.Error(), http.StatusUnauthorized)
		return nil
	}
	if !session.User.IsAdmin {
		http.Error(w, "admin access required", http.StatusForbidden)
		return nil
	}
	return session
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// --- auth ---

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: session.Token, User: session.User})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: session.Token, User: session.User})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFrom(r)
	if err := h.Auth.Logout(r.Context(), session); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Auth.UpdateProfile(r.Context(), session, req.Name, req.Phone, req.Address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.User)
}

// --- restaurants ---

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.Browse(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.Restaurants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// --- cart ---

type cartResponse struct {
	Cart      domain.Cart `json:"cart"`
	Subtotal  float64     `json:"subtotal"`
	ItemCount int         `json:"item_count"`
}

func cartPayload(session *domain.Session) cartResponse {
	return cartResponse{
		Cart:      session.Cart,
		Subtotal:  session.Cart.Subtotal(),
		ItemCount: session.Cart.ItemCount(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		MenuItemID   string `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := h.Cart.AddItem(r.Context(), session, req.RestaurantID, req.MenuItemID)
	if errors.Is(err, service.ErrCartConflict) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":        err.Error(),
			"pending_item": session.Cart.PendingItem,
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Cart.UpdateQuantity(r.Context(), session, mux.Vars(r)["itemId"], req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	if err := h.Cart.RemoveItem(r.Context(), session, mux.Vars(r)["itemId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

func (h *Handler) resolveConflictReplace(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	if err := h.Cart.ResolveConflictReplace(r.Context(), session); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

func (h *Handler) resolveConflictCancel(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	if err := h.Cart.ResolveConflictCancel(r.Context(), session); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartPayload(session))
}

// --- orders ---

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFrom(r)
	var req struct {
		PaymentMethod       string `json:"payment_method"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	order, err := h.Orders.PlaceOrder(r.Context(), session, req.PaymentMethod, req.SpecialInstructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, presentOrder(*order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	orders, err := h.Orders.OrdersFor(r.Context(), session)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

func (h *Handler) listCurrentOrders(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	orders, err := h.Orders.CurrentOrders(r.Context(), session)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

func (h *Handler) listPastOrders(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}
	orders, err := h.Orders.PastOrders(r.Context(), session)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

// getOrder stays unauthenticated: the QR tracking page resolves orders by id
// alone.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(*order))
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qr) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

// --- admin ---

func (h *Handler) adminListRestaurants(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	restaurants, err := h.Restaurants.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) adminToggleRestaurant(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	active, err := h.Restaurants.ToggleActive(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	orders, err := h.Status.AllOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

func (h *Handler) adminAdvanceOrder(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	order, err := h.Status.AdvanceOne(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(*order))
}

func (h *Handler) adminSetOrderStatus(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Status.SetStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(*order))
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	users, err := h.Auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
