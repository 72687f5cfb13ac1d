package dto

import "time"

// OrderCreateRequest is the order-finalized hook payload.
type OrderCreateRequest struct {
	OrderID string `json:"order_id"`
	Total   string `json:"total" binding:"required"`
}

// OrderResponse describes an order with its reconciliation fields.
type OrderResponse struct {
	OrderID        string           `json:"order_id"`
	Total          string           `json:"total"`
	DisplayTotal   *string          `json:"display_total,omitempty"`
	ConvertedTotal *string          `json:"converted_total,omitempty"`
	Status         string           `json:"status"`
	Refunds        []RefundResponse `json:"refunds,omitempty"`
	CreatedAt      time.Time        `json:"created_at,omitzero"`
	UpdatedAt      time.Time        `json:"updated_at,omitzero"`
}

// SettlementLineResponse carries the settlement-currency addendum line.
type SettlementLineResponse struct {
	Line string `json:"line"`
}
