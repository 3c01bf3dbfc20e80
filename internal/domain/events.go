package domain

import "time"

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "status_changed"
)

// OrderEvent is the message emitted to the orders stream for downstream
// aggregation; it is not a delivery channel back to clients.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
}
