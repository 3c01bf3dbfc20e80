package service

import (
	"context"
	"log"
	"time"

	"fooday/internal/domain"
)

// StatusService moves orders through the forward pipeline. All writes go
// through the authoritative store; absent ids surface domain.ErrNotFound with
// nothing touched.
type StatusService struct {
	orders    OrderRepository
	publisher OrderEventPublisher
}

func NewStatusService(orders OrderRepository, publisher OrderEventPublisher) *StatusService {
	return &StatusService{orders: orders, publisher: publisher}
}

// AdvanceOne moves the order one step along the forward pipeline. Orders that
// are delivered, or cancelled and therefore outside the pipeline, are left
// untouched and no error is returned.
func (s *StatusService) AdvanceOne(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return order, nil
	}
	return s.set(ctx, order, next)
}

// SetStatus overwrites the status unconditionally. Privileged callers use it
// for direct assignment; it is the only path into cancelled.
func (s *StatusService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	return s.set(ctx, order, status)
}

// AllOrders is the administrative view across every identity. Newest first.
func (s *StatusService) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *StatusService) set(ctx context.Context, order *domain.Order, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.orders.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         domain.EventStatusChanged,
			OrderID:      order.ID,
			UserID:       order.UserID,
			RestaurantID: order.RestaurantID,
			Status:       status,
			Total:        order.Total,
			Timestamp:    time.Now(),
		}); err != nil {
			log.Printf("[fooday] failed to publish status event: %v", err)
		}
	}
	return order, nil
}
