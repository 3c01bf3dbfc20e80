package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Restaurant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Cuisine      string     `json:"cuisine"`
	Rating       float64    `json:"rating"`
	DeliveryTime string     `json:"delivery_time"`
	DeliveryFee  float64    `json:"delivery_fee"`
	Address      string     `json:"address"`
	IsActive     bool       `json:"is_active"`
	MenuItems    []MenuItem `json:"menu_items"`
	CreatedAt    time.Time  `json:"created_at"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"is_available"`
	IsPopular   bool    `json:"is_popular"`
}

// CartItem is a snapshot of a menu entry plus a quantity. Orders carry copies
// of these lines, so later cart edits never reach a committed order.
type CartItem struct {
	ID             string   `json:"id"`
	MenuItem       MenuItem `json:"menu_item"`
	Quantity       int      `json:"quantity"`
	RestaurantID   string   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
}

func (i CartItem) Subtotal() float64 {
	return i.MenuItem.Price * float64(i.Quantity)
}

// Order is immutable after creation except for Status.
// Invariant: Subtotal == sum of line subtotals, Total == Subtotal + DeliveryFee.
type Order struct {
	ID                  string      `json:"id"`
	UserID              string      `json:"user_id"`
	RestaurantID        string      `json:"restaurant_id"`
	RestaurantName      string      `json:"restaurant_name"`
	Items               []CartItem  `json:"items"`
	Status              OrderStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	EstimatedDelivery   time.Time   `json:"estimated_delivery"`
	DeliveryAddress     string      `json:"delivery_address"`
	Subtotal            float64     `json:"subtotal"`
	DeliveryFee         float64     `json:"delivery_fee"`
	Total               float64     `json:"total"`
	PaymentMethod       string      `json:"payment_method"`
	SpecialInstructions string      `json:"special_instructions"`
}
