package domain

import "fmt"

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// ForwardPipeline is the fixed progression an order moves through one step at
// a time. Delivered is the final entry; cancelled sits outside the pipeline
// and is reachable only by direct assignment.
var ForwardPipeline = []OrderStatus{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// Next returns the following pipeline entry. ok is false when the status is
// not in the pipeline (cancelled) or already at its end (delivered).
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range ForwardPipeline {
		if st == s {
			if i+1 < len(ForwardPipeline) {
				return ForwardPipeline[i+1], true
			}
			return s, false
		}
	}
	return s, false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPlaced, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}
