package dto

// CheckoutPreviewRequest carries the cart total shown to the shopper.
type CheckoutPreviewRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CheckoutPreviewResponse returns both sides of the conversion.
type CheckoutPreviewResponse struct {
	DisplayAmount      string `json:"display_amount"`
	DisplayCurrency    string `json:"display_currency"`
	SettlementAmount   string `json:"settlement_amount"`
	SettlementCurrency string `json:"settlement_currency"`
}
