package service

import (
	"context"

	"fooday/internal/domain"
)

// Catalog Store ports. Lookups return domain.ErrNotFound when no record
// matches; mutations that name an absent id return it with state untouched.

type UserRepository interface {
	// GetByEmailFold matches case-insensitively (the login path).
	GetByEmailFold(ctx context.Context, email string) (*domain.User, error)
	// GetByEmail matches the exact string (the registration duplicate check).
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	InsertUser(ctx context.Context, user *domain.User) error
	UpdateUserProfile(ctx context.Context, id, name, phone, address string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error)
	// ToggleRestaurantActive flips the active flag once and returns the new value.
	ToggleRestaurantActive(ctx context.Context, id string) (bool, error)
}

type OrderRepository interface {
	// InsertOrder places the order at the head of the collection; listings are
	// most-recent-first by contract.
	InsertOrder(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SaveOrderQRCode(ctx context.Context, id string, qr []byte) error
	GetOrderQRCode(ctx context.Context, id string) ([]byte, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}
