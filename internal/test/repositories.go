package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// OrderUpdateCall captures a SetTotal invocation.
type OrderUpdateCall struct {
	OrderID string
	Total   decimal.Decimal
	Status  model.OrderStatus
}

// OrderRepositoryStub stores orders in-memory and lets tests override behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, string, decimal.Decimal) (*model.Order, bool, error)
	GetByIDFn            func(context.Context, string) (*model.Order, error)
	SetPersistedTotalsFn func(context.Context, string, decimal.Decimal, decimal.Decimal) error
	SetTotalFn           func(context.Context, string, decimal.Decimal, model.OrderStatus) error

	Orders      map[string]*model.Order
	UpdateCalls []OrderUpdateCall
}

// NewOrderRepositoryStub constructs the stub with an initialized order map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create registers the order unless it already exists.
func (s *OrderRepositoryStub) Create(ctx context.Context, orderID string, total decimal.Decimal) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderID, total)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if existing, ok := s.Orders[orderID]; ok {
		return existing, false, nil
	}
	order := &model.Order{ID: orderID, Total: total, Status: model.OrderStatusCreated}
	s.Orders[orderID] = order
	return order, true, nil
}

// GetByID fetches a stored order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	if order, ok := s.Orders[orderID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetPersistedTotals writes the display/converted pair once.
func (s *OrderRepositoryStub) SetPersistedTotals(ctx context.Context, orderID string, display, converted decimal.Decimal) error {
	if s.SetPersistedTotalsFn != nil {
		return s.SetPersistedTotalsFn(ctx, orderID, display, converted)
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.DisplayTotal != nil || order.ConvertedTotal != nil {
		return domainErrors.ErrImmutableTotals
	}
	order.DisplayTotal = &display
	order.ConvertedTotal = &converted
	return nil
}

// SetTotal records the update and applies it to the stored order.
func (s *OrderRepositoryStub) SetTotal(ctx context.Context, orderID string, total decimal.Decimal, status model.OrderStatus) error {
	if s.SetTotalFn != nil {
		return s.SetTotalFn(ctx, orderID, total, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Total: total, Status: status})
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Total = total
	order.Status = status
	return nil
}

// RefundRepositoryStub keeps refunds in insertion order.
type RefundRepositoryStub struct {
	SaveFn        func(context.Context, *model.Refund) error
	ListByOrderFn func(context.Context, string) ([]model.Refund, error)

	Saved []model.Refund
}

// Save records the refund or delegates to the override.
func (s *RefundRepositoryStub) Save(ctx context.Context, refund *model.Refund) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, refund)
	}
	s.Saved = append(s.Saved, *refund)
	return nil
}

// ListByOrder returns recorded refunds for the order.
func (s *RefundRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Refund, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	var out []model.Refund
	for _, refund := range s.Saved {
		if refund.OrderID == orderID {
			out = append(out, refund)
		}
	}
	return out, nil
}

// SummaryRowCall captures an OverwriteRefundRow invocation.
type SummaryRowCall struct {
	RefundID string
	Total    decimal.Decimal
}

// SummaryRepositoryStub records analytics overwrites.
type SummaryRepositoryStub struct {
	OverwriteFn func(context.Context, string, decimal.Decimal) error

	Calls []SummaryRowCall
}

// OverwriteRefundRow records the call or delegates to the override.
func (s *SummaryRepositoryStub) OverwriteRefundRow(ctx context.Context, refundID string, total decimal.Decimal) error {
	if s.OverwriteFn != nil {
		return s.OverwriteFn(ctx, refundID, total)
	}
	s.Calls = append(s.Calls, SummaryRowCall{RefundID: refundID, Total: total})
	return nil
}
