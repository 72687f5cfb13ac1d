package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/currency"
	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/domain/repository"
	"github.com/UVLabs/gateway-currency/internal/render"
)

// OrderUseCase owns the settled side of the order lifecycle: the
// confirmation-time display correction and the read-side rendering patches.
type OrderUseCase struct {
	converter *currency.Converter
	orders    repository.OrderRepository
	refunds   repository.RefundRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(converter *currency.Converter, orders repository.OrderRepository, refunds repository.RefundRepository) *OrderUseCase {
	return &OrderUseCase{converter: converter, orders: orders, refunds: refunds}
}

// Confirm rewrites the order's generic total back to the display amount,
// undoing the settlement value written at finalization. Safe to re-fire:
// repeated confirmations write the same value.
func (u *OrderUseCase) Confirm(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DisplayTotal == nil {
		return nil, domainErrors.ErrMissingCheckoutSession
	}

	status := order.Status
	if status == model.OrderStatusCreated {
		status = model.OrderStatusSettled
	}

	if err := u.orders.SetTotal(ctx, orderID, *order.DisplayTotal, status); err != nil {
		return nil, err
	}

	order.Total = *order.DisplayTotal
	order.Status = status
	return order, nil
}

// Get returns an order together with its refunds.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, []model.Refund, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	refunds, err := u.refunds.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, refunds, nil
}

// SettlementLine renders the "amount paid in settlement currency" addendum
// appended to admin, customer, and email order views.
func (u *OrderUseCase) SettlementLine(ctx context.Context, orderID string) (string, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.ConvertedTotal == nil {
		return "", domainErrors.ErrMissingCheckoutSession
	}
	return fmt.Sprintf("Amount paid in %s: %s", u.converter.SettlementCode(), currency.Format(*order.ConvertedTotal)), nil
}

// RenderedTotal patches the authoritative display total into a pre-rendered
// total string. The underlying generic total may still hold the settlement
// amount when this runs on the first confirmation-page load. When the
// embedded amount cannot be located, or the display total was never
// persisted, the input is returned unchanged.
func (u *OrderUseCase) RenderedTotal(ctx context.Context, orderID, rendered string) (string, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.DisplayTotal == nil {
		return rendered, nil
	}
	patched, _ := render.ReplaceAmount(rendered, *order.DisplayTotal)
	return patched, nil
}

// RenderedRows patches the itemized totals breakdown. Refund rows get the
// persisted display refund amounts, and the total row is recomputed from
// display-currency figures whenever a refund is present.
func (u *OrderUseCase) RenderedRows(ctx context.Context, orderID string, rows []render.TotalRow) ([]render.TotalRow, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DisplayTotal == nil {
		return rows, nil
	}

	refunds, err := u.refunds.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, 0, len(refunds))
	for _, refund := range refunds {
		amounts = append(amounts, refund.DisplayAmount)
	}

	return render.SubstituteRows(rows, *order.DisplayTotal, amounts), nil
}
