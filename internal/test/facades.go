package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/render"
)

// AppliedRefund captures an ApplyRefund invocation.
type AppliedRefund struct {
	OrderID   string
	RefundID  string
	Amount    decimal.Decimal
	IsPartial bool
}

// WorkerFacadeStub scripts refund batches for the poller.
type WorkerFacadeStub struct {
	sync.Mutex

	Batches [][]gateway.RefundEvent
	next    int

	PendingFn func(context.Context, int) ([]gateway.RefundEvent, error)
	ApplyFn   func(context.Context, string, string, decimal.Decimal, bool) (*model.Refund, error)
	AckFn     func(context.Context, string) error

	Applied []AppliedRefund
	Acked   []string
}

// PendingRefunds returns the next scripted batch, then reports no pending work.
func (s *WorkerFacadeStub) PendingRefunds(ctx context.Context, limit int) ([]gateway.RefundEvent, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	s.Lock()
	defer s.Unlock()
	if s.next >= len(s.Batches) {
		return nil, gateway.ErrNoPendingRefunds
	}
	batch := s.Batches[s.next]
	s.next++
	return batch, nil
}

// ApplyRefund records the reconciliation call.
func (s *WorkerFacadeStub) ApplyRefund(ctx context.Context, orderID, refundID string, amount decimal.Decimal, partial bool) (*model.Refund, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, orderID, refundID, amount, partial)
	}
	s.Lock()
	defer s.Unlock()
	s.Applied = append(s.Applied, AppliedRefund{OrderID: orderID, RefundID: refundID, Amount: amount, IsPartial: partial})
	return &model.Refund{ID: refundID, OrderID: orderID, SettlementAmount: amount, IsPartial: partial}, nil
}

// AckRefund records acknowledgements.
func (s *WorkerFacadeStub) AckRefund(ctx context.Context, refundID string) error {
	if s.AckFn != nil {
		return s.AckFn(ctx, refundID)
	}
	s.Lock()
	defer s.Unlock()
	s.Acked = append(s.Acked, refundID)
	return nil
}

// ReconcilerFacadeStub provides controllable behaviour for hook endpoints.
type ReconcilerFacadeStub struct {
	PreviewFn       func(decimal.Decimal) (decimal.Decimal, error)
	FinalizeFn      func(context.Context, string, decimal.Decimal) (*model.Order, bool, error)
	PersistMetaFn   func(context.Context, string) (*model.Order, error)
	ConfirmFn       func(context.Context, string) (*model.Order, error)
	OrderFn         func(context.Context, string) (*model.Order, []model.Refund, error)
	SettlementFn    func(context.Context, string) (string, error)
	RenderedTotalFn func(context.Context, string, string) (string, error)
	RenderedRowsFn  func(context.Context, string, []render.TotalRow) ([]render.TotalRow, error)
	ApplyRefundFn   func(context.Context, string, string, decimal.Decimal, bool) (*model.Refund, error)
	DisplayCode     string
	SettlementCode  string
}

// PreviewTotal delegates to the override or echoes the amount.
func (s ReconcilerFacadeStub) PreviewTotal(display decimal.Decimal) (decimal.Decimal, error) {
	if s.PreviewFn != nil {
		return s.PreviewFn(display)
	}
	return display, nil
}

// FinalizeOrder delegates or returns a freshly created order.
func (s ReconcilerFacadeStub) FinalizeOrder(ctx context.Context, orderID string, display decimal.Decimal) (*model.Order, bool, error) {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, orderID, display)
	}
	return &model.Order{ID: orderID, Total: display, Status: model.OrderStatusCreated}, true, nil
}

// PersistOrderMeta delegates or returns a bare order.
func (s ReconcilerFacadeStub) PersistOrderMeta(ctx context.Context, orderID string) (*model.Order, error) {
	if s.PersistMetaFn != nil {
		return s.PersistMetaFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCreated}, nil
}

// ConfirmOrder delegates or returns a settled order.
func (s ReconcilerFacadeStub) ConfirmOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusSettled}, nil
}

// Order delegates or returns a bare order without refunds.
func (s ReconcilerFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, []model.Refund, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusSettled}, nil, nil
}

// SettlementLine delegates or returns a fixed line.
func (s ReconcilerFacadeStub) SettlementLine(ctx context.Context, orderID string) (string, error) {
	if s.SettlementFn != nil {
		return s.SettlementFn(ctx, orderID)
	}
	return "Amount paid in EUR: 91.33", nil
}

// RenderedTotal delegates or echoes the input.
func (s ReconcilerFacadeStub) RenderedTotal(ctx context.Context, orderID, rendered string) (string, error) {
	if s.RenderedTotalFn != nil {
		return s.RenderedTotalFn(ctx, orderID, rendered)
	}
	return rendered, nil
}

// RenderedRows delegates or echoes the input rows.
func (s ReconcilerFacadeStub) RenderedRows(ctx context.Context, orderID string, rows []render.TotalRow) ([]render.TotalRow, error) {
	if s.RenderedRowsFn != nil {
		return s.RenderedRowsFn(ctx, orderID, rows)
	}
	return rows, nil
}

// ApplyRefund delegates or returns a minimal refund.
func (s ReconcilerFacadeStub) ApplyRefund(ctx context.Context, orderID, refundID string, amount decimal.Decimal, partial bool) (*model.Refund, error) {
	if s.ApplyRefundFn != nil {
		return s.ApplyRefundFn(ctx, orderID, refundID, amount, partial)
	}
	return &model.Refund{ID: refundID, OrderID: orderID, SettlementAmount: amount, DisplayAmount: amount, RunningTotal: amount.Neg(), IsPartial: partial}, nil
}

// DisplayCurrency returns the configured display code.
func (s ReconcilerFacadeStub) DisplayCurrency() string {
	if s.DisplayCode != "" {
		return s.DisplayCode
	}
	return "USD"
}

// SettlementCurrency returns the configured settlement code.
func (s ReconcilerFacadeStub) SettlementCurrency() string {
	if s.SettlementCode != "" {
		return s.SettlementCode
	}
	return "EUR"
}
