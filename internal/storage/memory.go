package storage

import (
	"context"
	"strings"
	"sync"

	"fooday/internal/domain"
)

// MemoryStore is the demo-mode backend. A single mutex serializes every
// write; reads hand out copies so callers can never alias stored state.
type MemoryStore struct {
	mu          sync.Mutex
	users       []domain.User
	restaurants []domain.Restaurant
	orders      []domain.Order
	qrCodes     map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{qrCodes: make(map[string][]byte)}
}

func cloneRestaurant(rest domain.Restaurant) domain.Restaurant {
	out := rest
	out.MenuItems = make([]domain.MenuItem, len(rest.MenuItems))
	copy(out.MenuItems, rest.MenuItems)
	return out
}

func cloneOrder(order domain.Order) domain.Order {
	out := order
	out.Items = make([]domain.CartItem, len(order.Items))
	copy(out.Items, order.Items)
	return out
}

// --- users ---

func (s *MemoryStore) GetByEmailFold(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			out := user
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			out := user
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) InsertUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) UpdateUserProfile(ctx context.Context, id, name, phone, address string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = name
			s.users[i].Phone = phone
			s.users[i].Address = address
			out := s.users[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// --- restaurants ---

func (s *MemoryStore) InsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants = append(s.restaurants, cloneRestaurant(*rest))
	return nil
}

func (s *MemoryStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(s.restaurants))
	for _, rest := range s.restaurants {
		out = append(out, cloneRestaurant(rest))
	}
	return out, nil
}

func (s *MemoryStore) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rest := range s.restaurants {
		if rest.ID == id {
			out := cloneRestaurant(rest)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rest := range s.restaurants {
		if rest.Name == name {
			out := cloneRestaurant(rest)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ToggleRestaurantActive(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.restaurants {
		if s.restaurants[i].ID == id {
			s.restaurants[i].IsActive = !s.restaurants[i].IsActive
			return s.restaurants[i].IsActive, nil
		}
	}
	return false, domain.ErrNotFound
}

// --- orders ---

func (s *MemoryStore) InsertOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the list ordering contract.
	s.orders = append([]domain.Order{cloneOrder(*order)}, s.orders...)
	return nil
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, cloneOrder(order))
	}
	return out, nil
}

func (s *MemoryStore) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, cloneOrder(order))
		}
	}
	return out, nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			out := cloneOrder(order)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) SaveOrderQRCode(ctx context.Context, id string, qr []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qrCodes[id] = qr
	return nil
}

func (s *MemoryStore) GetOrderQRCode(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			return s.qrCodes[id], nil
		}
	}
	return nil, domain.ErrNotFound
}

// MemorySessionStore keeps sessions in-process; used in demo mode and tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) SaveSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	stored.Cart.Items = make([]domain.CartItem, len(session.Cart.Items))
	copy(stored.Cart.Items, session.Cart.Items)
	if session.Cart.PendingItem != nil {
		pending := *session.Cart.PendingItem
		stored.Cart.PendingItem = &pending
	}
	s.sessions[session.Token] = stored
	return nil
}

func (s *MemorySessionStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := stored
	out.Cart.Items = make([]domain.CartItem, len(stored.Cart.Items))
	copy(out.Cart.Items, stored.Cart.Items)
	if stored.Cart.PendingItem != nil {
		pending := *stored.Cart.PendingItem
		out.Cart.PendingItem = &pending
	}
	return &out, nil
}

func (s *MemorySessionStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
