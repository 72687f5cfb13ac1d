package dto

import "time"

// RefundRequest is the gateway refund hook payload. Amount is the
// settlement-currency figure reported by the gateway.
type RefundRequest struct {
	RefundID string `json:"refund_id"`
	Amount   string `json:"amount" binding:"required"`
	Partial  bool   `json:"partial"`
}

// RefundResponse describes a reconciled refund.
type RefundResponse struct {
	RefundID         string    `json:"refund_id"`
	OrderID          string    `json:"order_id"`
	SettlementAmount string    `json:"settlement_amount"`
	DisplayAmount    string    `json:"display_amount"`
	RunningTotal     string    `json:"running_total"`
	Partial          bool      `json:"partial"`
	ProcessedAt      time.Time `json:"processed_at,omitzero"`
}
