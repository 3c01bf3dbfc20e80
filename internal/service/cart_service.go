package service

import (
	"context"
	"fmt"

	"fooday/internal/domain"

	"github.com/google/uuid"
)

type CartService struct {
	restaurants RestaurantRepository
	sessions    SessionStore
}

func NewCartService(restaurants RestaurantRepository, sessions SessionStore) *CartService {
	return &CartService{restaurants: restaurants, sessions: sessions}
}

// AddItem puts one unit of a menu entry into the session's cart. A non-empty
// cart bound to a different restaurant is a conflict: the cart lines stay
// untouched, the candidate is parked as the pending item, and ErrCartConflict
// is returned for the caller to resolve.
func (s *CartService) AddItem(ctx context.Context, session *domain.Session, restaurantID, menuItemID string) error {
	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	var entry *domain.MenuItem
	for i := range restaurant.MenuItems {
		if restaurant.MenuItems[i].ID == menuItemID {
			entry = &restaurant.MenuItems[i]
			break
		}
	}
	if entry == nil {
		return domain.ErrNotFound
	}

	cart := &session.Cart
	if !cart.Empty() && cart.RestaurantName != restaurant.Name {
		cart.PendingItem = &domain.CartItem{
			ID:             uuid.NewString(),
			MenuItem:       *entry,
			Quantity:       1,
			RestaurantID:   restaurant.ID,
			RestaurantName: restaurant.Name,
		}
		if err := s.sessions.SaveSession(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return ErrCartConflict
	}

	cart.RestaurantID = restaurant.ID
	cart.RestaurantName = restaurant.Name
	s.mergeLine(cart, *entry, restaurant)

	return s.sessions.SaveSession(ctx, session)
}

func (s *CartService) mergeLine(cart *domain.Cart, entry domain.MenuItem, restaurant *domain.Restaurant) {
	for i := range cart.Items {
		if cart.Items[i].MenuItem.ID == entry.ID {
			cart.Items[i].Quantity++
			return
		}
	}
	cart.Items = append(cart.Items, domain.CartItem{
		ID:             uuid.NewString(),
		MenuItem:       entry,
		Quantity:       1,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
	})
}

// ResolveConflictReplace discards the existing lines, rebinds the cart to the
// pending line's restaurant and inserts it. Without a pending line it is a
// silent no-op.
func (s *CartService) ResolveConflictReplace(ctx context.Context, session *domain.Session) error {
	cart := &session.Cart
	pending := cart.PendingItem
	if pending == nil {
		return nil
	}

	cart.Items = []domain.CartItem{*pending}
	cart.RestaurantID = pending.RestaurantID
	cart.RestaurantName = pending.RestaurantName
	cart.PendingItem = nil

	return s.sessions.SaveSession(ctx, session)
}

// ResolveConflictCancel drops the pending line; the cart is unchanged.
func (s *CartService) ResolveConflictCancel(ctx context.Context, session *domain.Session) error {
	if session.Cart.PendingItem == nil {
		return nil
	}
	session.Cart.PendingItem = nil
	return s.sessions.SaveSession(ctx, session)
}

// RemoveItem deletes a line by id. Removing the last line clears the cart's
// restaurant binding.
func (s *CartService) RemoveItem(ctx context.Context, session *domain.Session, lineID string) error {
	cart := &session.Cart
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	if cart.Empty() {
		cart.Items = nil
		cart.RestaurantID = ""
		cart.RestaurantName = ""
	}
	return s.sessions.SaveSession(ctx, session)
}

// UpdateQuantity overwrites a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, session *domain.Session, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, session, lineID)
	}
	for i := range session.Cart.Items {
		if session.Cart.Items[i].ID == lineID {
			session.Cart.Items[i].Quantity = quantity
			break
		}
	}
	return s.sessions.SaveSession(ctx, session)
}
