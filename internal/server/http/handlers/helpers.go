package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/currency"
	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/server/http/dto"
)

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := currency.Parse(raw)
	if err != nil {
		return decimal.Decimal{}, domainErrors.ErrInvalidAmount
	}
	return amount, nil
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrMissingCheckoutSession):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrImmutableTotals):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func toOrderResponse(order *model.Order, refunds []model.Refund) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:   order.ID,
		Total:     order.Total.StringFixed(2),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if order.DisplayTotal != nil {
		v := order.DisplayTotal.StringFixed(2)
		resp.DisplayTotal = &v
	}
	if order.ConvertedTotal != nil {
		v := order.ConvertedTotal.StringFixed(2)
		resp.ConvertedTotal = &v
	}
	for _, refund := range refunds {
		resp.Refunds = append(resp.Refunds, toRefundResponse(refund))
	}
	return resp
}

func toRefundResponse(refund model.Refund) dto.RefundResponse {
	return dto.RefundResponse{
		RefundID:         refund.ID,
		OrderID:          refund.OrderID,
		SettlementAmount: refund.SettlementAmount.StringFixed(2),
		DisplayAmount:    refund.DisplayAmount.StringFixed(2),
		RunningTotal:     refund.RunningTotal.StringFixed(2),
		Partial:          refund.IsPartial,
		ProcessedAt:      refund.ProcessedAt,
	}
}
