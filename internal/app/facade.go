package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/currency"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/render"
	"github.com/UVLabs/gateway-currency/internal/usecase"
)

// RefundSource feeds unacknowledged gateway refund events to the poller.
type RefundSource interface {
	PendingRefunds(ctx context.Context, limit int) ([]gateway.RefundEvent, error)
	Ack(ctx context.Context, refundID string) error
}

// ReconcilerFacade aggregates the use cases behind the HTTP handlers and the
// refund poller.
type ReconcilerFacade struct {
	converter *currency.Converter
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderUseCase
	refunds   *usecase.RefundUseCase
	source    RefundSource
}

// NewReconcilerFacade constructs ReconcilerFacade.
func NewReconcilerFacade(
	converter *currency.Converter,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	refunds *usecase.RefundUseCase,
	source RefundSource,
) *ReconcilerFacade {
	return &ReconcilerFacade{
		converter: converter,
		checkout:  checkout,
		orders:    orders,
		refunds:   refunds,
		source:    source,
	}
}

func (f *ReconcilerFacade) PreviewTotal(display decimal.Decimal) (decimal.Decimal, error) {
	return f.checkout.Preview(display)
}

func (f *ReconcilerFacade) FinalizeOrder(ctx context.Context, orderID string, display decimal.Decimal) (*model.Order, bool, error) {
	return f.checkout.FinalizeOrder(ctx, orderID, display)
}

func (f *ReconcilerFacade) PersistOrderMeta(ctx context.Context, orderID string) (*model.Order, error) {
	return f.checkout.PersistOrderMeta(ctx, orderID)
}

func (f *ReconcilerFacade) ConfirmOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Confirm(ctx, orderID)
}

func (f *ReconcilerFacade) Order(ctx context.Context, orderID string) (*model.Order, []model.Refund, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *ReconcilerFacade) SettlementLine(ctx context.Context, orderID string) (string, error) {
	return f.orders.SettlementLine(ctx, orderID)
}

func (f *ReconcilerFacade) RenderedTotal(ctx context.Context, orderID, rendered string) (string, error) {
	return f.orders.RenderedTotal(ctx, orderID, rendered)
}

func (f *ReconcilerFacade) RenderedRows(ctx context.Context, orderID string, rows []render.TotalRow) ([]render.TotalRow, error) {
	return f.orders.RenderedRows(ctx, orderID, rows)
}

func (f *ReconcilerFacade) ApplyRefund(ctx context.Context, orderID, refundID string, settlementAmount decimal.Decimal, partial bool) (*model.Refund, error) {
	return f.refunds.Apply(ctx, orderID, refundID, settlementAmount, partial)
}

func (f *ReconcilerFacade) PendingRefunds(ctx context.Context, limit int) ([]gateway.RefundEvent, error) {
	return f.source.PendingRefunds(ctx, limit)
}

func (f *ReconcilerFacade) AckRefund(ctx context.Context, refundID string) error {
	return f.source.Ack(ctx, refundID)
}

func (f *ReconcilerFacade) DisplayCurrency() string {
	return f.converter.DisplayCode()
}

func (f *ReconcilerFacade) SettlementCurrency() string {
	return f.converter.SettlementCode()
}
