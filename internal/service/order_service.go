package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fooday/internal/domain"

	"github.com/google/uuid"
)

const (
	// Fee charged when the cart's restaurant name no longer resolves. The
	// name-based lookup is a known fragility carried over on purpose.
	fallbackDeliveryFee = 2.99

	deliveryEstimate = 35 * time.Minute
)

type OrderService struct {
	orders      OrderRepository
	restaurants RestaurantRepository
	sessions    SessionStore
	publisher   OrderEventPublisher
	qrEncoder   QRGenerator
}

func NewOrderService(orders OrderRepository, restaurants RestaurantRepository, sessions SessionStore, publisher OrderEventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		sessions:    sessions,
		publisher:   publisher,
		qrEncoder:   qr,
	}
}

// PlaceOrder commits the session's cart as an immutable order. Precondition
// failures return before any side effect; on success the cart is cleared and
// the order is prepended to the authoritative collection.
func (s *OrderService) PlaceOrder(ctx context.Context, session *domain.Session, paymentMethod, instructions string) (*domain.Order, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	cart := &session.Cart
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	fee := fallbackDeliveryFee
	restaurant, err := s.restaurants.GetRestaurantByName(ctx, cart.RestaurantName)
	if err == nil {
		fee = restaurant.DeliveryFee
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve delivery fee: %w", err)
	}

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	now := time.Now()
	subtotal := cart.Subtotal()
	order := &domain.Order{
		ID:                  uuid.NewString(),
		UserID:              session.User.ID,
		RestaurantID:        cart.RestaurantID,
		RestaurantName:      cart.RestaurantName,
		Items:               items,
		Status:              domain.StatusPlaced,
		CreatedAt:           now,
		EstimatedDelivery:   now.Add(deliveryEstimate),
		DeliveryAddress:     session.User.Address,
		Subtotal:            subtotal,
		DeliveryFee:         fee,
		Total:               subtotal + fee,
		PaymentMethod:       paymentMethod,
		SpecialInstructions: instructions,
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	session.Cart = domain.Cart{}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         domain.EventOrderPlaced,
			OrderID:      order.ID,
			UserID:       order.UserID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			Total:        order.Total,
			Timestamp:    now,
		}); err != nil {
			log.Printf("[fooday] failed to publish order event: %v", err)
		}
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.orders.SaveOrderQRCode(ctx, order.ID, qr)
		}
	}

	return order, nil
}

// OrdersFor is the per-identity view of the authoritative collection, derived
// by filtering on read. Newest first.
func (s *OrderService) OrdersFor(ctx context.Context, session *domain.Session) ([]domain.Order, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s.orders.ListOrdersByUser(ctx, session.User.ID)
}

func (s *OrderService) CurrentOrders(ctx context.Context, session *domain.Session) ([]domain.Order, error) {
	all, err := s.OrdersFor(ctx, session)
	if err != nil {
		return nil, err
	}
	var current []domain.Order
	for _, order := range all {
		if !order.Status.Terminal() {
			current = append(current, order)
		}
	}
	return current, nil
}

func (s *OrderService) PastOrders(ctx context.Context, session *domain.Session) ([]domain.Order, error) {
	all, err := s.OrdersFor(ctx, session)
	if err != nil {
		return nil, err
	}
	var past []domain.Order
	for _, order := range all {
		if order.Status.Terminal() {
			past = append(past, order)
		}
	}
	return past, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

// QRCode returns the stored tracking code, generating it lazily when the
// stored copy is missing.
func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	qr, err := s.orders.GetOrderQRCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, err := s.qrEncoder.Generate(id)
		if err != nil {
			return nil, err
		}
		_ = s.orders.SaveOrderQRCode(ctx, id, regenerated)
		return regenerated, nil
	}
	return qr, nil
}
