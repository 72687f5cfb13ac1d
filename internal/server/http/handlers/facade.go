package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/render"
)

// CheckoutFacade covers the checkout-time hooks.
type CheckoutFacade interface {
	PreviewTotal(display decimal.Decimal) (decimal.Decimal, error)
	FinalizeOrder(ctx context.Context, orderID string, display decimal.Decimal) (*model.Order, bool, error)
	PersistOrderMeta(ctx context.Context, orderID string) (*model.Order, error)
}

// OrderFacade covers confirmation and order views.
type OrderFacade interface {
	ConfirmOrder(ctx context.Context, orderID string) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, []model.Refund, error)
	SettlementLine(ctx context.Context, orderID string) (string, error)
}

// RenderFacade covers rendering-time substitution.
type RenderFacade interface {
	RenderedTotal(ctx context.Context, orderID, rendered string) (string, error)
	RenderedRows(ctx context.Context, orderID string, rows []render.TotalRow) ([]render.TotalRow, error)
}

// RefundHookFacade covers the gateway refund hook.
type RefundHookFacade interface {
	ApplyRefund(ctx context.Context, orderID, refundID string, settlementAmount decimal.Decimal, partial bool) (*model.Refund, error)
}

// ReconcilerFacade aggregates the full set of operations used across handlers.
type ReconcilerFacade interface {
	CheckoutFacade
	OrderFacade
	RenderFacade
	RefundHookFacade

	DisplayCurrency() string
	SettlementCurrency() string
}
