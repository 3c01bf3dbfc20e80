package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fooday/internal/domain"
	"fooday/internal/service"
	"fooday/internal/storage"
)

func newOrderFixture(t *testing.T) (*service.OrderService, *storage.MemoryStore, *domain.Session) {
	t.Helper()
	store := storage.NewMemoryStore()
	sessions := storage.NewMemorySessionStore()
	seedTwoRestaurants(t, store)
	session := &domain.Session{
		Token:     "order-test-token",
		User:      domain.User{ID: "user-1", Name: "Alex", Email: "alex@example.com", Address: "42 Maple Street"},
		CreatedAt: time.Now(),
	}
	assert.NoError(t, sessions.SaveSession(context.Background(), session))
	svc := service.NewOrderService(store, store, sessions, nil, nil)
	return svc, store, session
}

func fillBurgerCart(session *domain.Session) {
	session.Cart = domain.Cart{
		RestaurantID:   "rest-burger",
		RestaurantName: "Burger Republic",
		Items: []domain.CartItem{
			{ID: "line-1", MenuItem: domain.MenuItem{ID: "item-burger", Name: "Classic Burger", Price: 12.99}, Quantity: 2, RestaurantID: "rest-burger", RestaurantName: "Burger Republic"},
			{ID: "line-2", MenuItem: domain.MenuItem{ID: "item-fries", Name: "French Fries", Price: 4.99}, Quantity: 1, RestaurantID: "rest-burger", RestaurantName: "Burger Republic"},
		},
	}
}

func TestOrderService_PlaceOrder_ComputesTotals(t *testing.T) {
	svc, _, session := newOrderFixture(t)
	fillBurgerCart(session)
	before := time.Now()

	order, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "ring the bell")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.InDelta(t, 30.97, order.Subtotal, 0.001)
	assert.InDelta(t, 2.99, order.DeliveryFee, 0.001)
	assert.InDelta(t, 33.96, order.Total, 0.001)
	assert.Equal(t, "42 Maple Street", order.DeliveryAddress)
	assert.Equal(t, "Credit Card", order.PaymentMethod)
	assert.Equal(t, "ring the bell", order.SpecialInstructions)
	assert.WithinDuration(t, before.Add(35*time.Minute), order.EstimatedDelivery, 5*time.Second)

	// The cart is cleared only after the order is committed.
	assert.True(t, session.Cart.Empty())
	assert.Empty(t, session.Cart.RestaurantName)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	svc, store, session := newOrderFixture(t)

	order, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	assert.Nil(t, order)

	orders, _ := store.ListOrders(context.Background())
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_NotLoggedIn(t *testing.T) {
	svc, store, _ := newOrderFixture(t)

	_, err := svc.PlaceOrder(context.Background(), nil, "Credit Card", "")
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	_, err = svc.PlaceOrder(context.Background(), &domain.Session{}, "Credit Card", "")
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	orders, _ := store.ListOrders(context.Background())
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_FallbackFeeWhenNameUnresolved(t *testing.T) {
	svc, _, session := newOrderFixture(t)
	session.Cart = domain.Cart{
		RestaurantID:   "rest-ghost",
		RestaurantName: "Ghost Kitchen",
		Items: []domain.CartItem{
			{ID: "line-1", MenuItem: domain.MenuItem{ID: "item-x", Name: "Mystery Meal", Price: 10.00}, Quantity: 1, RestaurantID: "rest-ghost", RestaurantName: "Ghost Kitchen"},
		},
	}

	order, err := svc.PlaceOrder(context.Background(), session, "Cash", "")

	assert.NoError(t, err)
	assert.InDelta(t, 2.99, order.DeliveryFee, 0.001)
	assert.InDelta(t, 12.99, order.Total, 0.001)
}

func TestOrderService_PlaceOrder_SnapshotsCartLines(t *testing.T) {
	svc, _, session := newOrderFixture(t)
	fillBurgerCart(session)
	lines := session.Cart.Items

	order, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")
	assert.NoError(t, err)

	// Mutating the old slice must not reach into the committed order.
	lines[0].Quantity = 99

	fetched, err := svc.Get(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestOrderService_OrdersFor_NewestFirst(t *testing.T) {
	svc, _, session := newOrderFixture(t)

	fillBurgerCart(session)
	first, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")
	assert.NoError(t, err)

	fillBurgerCart(session)
	second, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")
	assert.NoError(t, err)

	orders, err := svc.OrdersFor(context.Background(), session)
	assert.NoError(t, err)
	if assert.Len(t, orders, 2) {
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
	}
}

func TestOrderService_OrdersFor_FiltersByUser(t *testing.T) {
	svc, store, session := newOrderFixture(t)
	fillBurgerCart(session)
	_, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")
	assert.NoError(t, err)

	assert.NoError(t, store.InsertOrder(context.Background(), &domain.Order{
		ID: "other-order", UserID: "user-2", Status: domain.StatusPlaced,
	}))

	orders, err := svc.OrdersFor(context.Background(), session)
	assert.NoError(t, err)
	if assert.Len(t, orders, 1) {
		assert.Equal(t, session.User.ID, orders[0].UserID)
	}
}

func TestOrderService_CurrentAndPastSplit(t *testing.T) {
	svc, store, session := newOrderFixture(t)
	ctx := context.Background()

	statuses := []domain.OrderStatus{
		domain.StatusPlaced,
		domain.StatusPreparing,
		domain.StatusDelivered,
		domain.StatusCancelled,
	}
	for i, status := range statuses {
		assert.NoError(t, store.InsertOrder(ctx, &domain.Order{
			ID:        string(status) + "-order",
			UserID:    session.User.ID,
			Status:    status,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	current, err := svc.CurrentOrders(ctx, session)
	assert.NoError(t, err)
	assert.Len(t, current, 2)
	for _, order := range current {
		assert.False(t, order.Status.Terminal())
	}

	past, err := svc.PastOrders(ctx, session)
	assert.NoError(t, err)
	assert.Len(t, past, 2)
	for _, order := range past {
		assert.True(t, order.Status.Terminal())
	}
}

func TestOrderService_QRCodeGeneratedOnPlacement(t *testing.T) {
	store := storage.NewMemoryStore()
	sessions := storage.NewMemorySessionStore()
	seedTwoRestaurants(t, store)
	session := &domain.Session{
		Token: "qr-test-token",
		User:  domain.User{ID: "user-1", Address: "42 Maple Street"},
	}
	assert.NoError(t, sessions.SaveSession(context.Background(), session))
	qr := service.DefaultQRGenerator{BaseURL: "http://localhost:8080"}
	svc := service.NewOrderService(store, store, sessions, nil, qr)

	fillBurgerCart(session)
	order, err := svc.PlaceOrder(context.Background(), session, "Credit Card", "")
	assert.NoError(t, err)

	png, err := svc.QRCode(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.QRCode(context.Background(), "ghost-order")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
