package domain

import "time"

// Cart holds the lines a session is assembling. A non-empty cart is bound to
// exactly one restaurant; an empty cart has no binding. PendingItem carries a
// candidate line from a different restaurant awaiting caller resolution.
type Cart struct {
	RestaurantID   string     `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Items          []CartItem `json:"items"`
	PendingItem    *CartItem  `json:"pending_item,omitempty"`
}

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Session carries the active identity and its cart through every core
// operation. Sessions are identity-scoped: logging out discards the cart.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	Cart      Cart      `json:"cart"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.User.ID != ""
}
