package httpapi

import "fooday/internal/domain"

// StatusView is how clients render an order status. Display concerns live
// here, not on the domain type.
type StatusView struct {
	Status      domain.OrderStatus `json:"status"`
	DisplayText string             `json:"display_text"`
	Icon        string             `json:"icon"`
	Progress    float64            `json:"progress"`
}

var statusViews = map[domain.OrderStatus]StatusView{
	domain.StatusPlaced:         {domain.StatusPlaced, "Order Placed", "checkmark.circle", 0.10},
	domain.StatusConfirmed:      {domain.StatusConfirmed, "Confirmed", "clock", 0.30},
	domain.StatusPreparing:      {domain.StatusPreparing, "Preparing", "flame", 0.55},
	domain.StatusOutForDelivery: {domain.StatusOutForDelivery, "Out for Delivery", "bicycle", 0.80},
	domain.StatusDelivered:      {domain.StatusDelivered, "Delivered", "house.fill", 1.00},
	domain.StatusCancelled:      {domain.StatusCancelled, "Cancelled", "xmark.circle", 0.00},
}

func ViewForStatus(status domain.OrderStatus) StatusView {
	if view, ok := statusViews[status]; ok {
		return view
	}
	return StatusView{Status: status, DisplayText: string(status)}
}

type orderResponse struct {
	domain.Order
	StatusView StatusView `json:"status_view"`
}

func presentOrder(order domain.Order) orderResponse {
	return orderResponse{Order: order, StatusView: ViewForStatus(order.Status)}
}

func presentOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, presentOrder(order))
	}
	return out
}
