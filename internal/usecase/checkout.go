package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/currency"
	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/domain/repository"
	"github.com/UVLabs/gateway-currency/internal/session"
)

// CheckoutUseCase handles the cart-to-order transition: settlement previews
// during checkout and the reconciliation performed when the platform
// finalizes an order total.
type CheckoutUseCase struct {
	converter *currency.Converter
	sessions  session.Store
	orders    repository.OrderRepository
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(converter *currency.Converter, sessions session.Store, orders repository.OrderRepository) *CheckoutUseCase {
	return &CheckoutUseCase{converter: converter, sessions: sessions, orders: orders}
}

// Preview returns the settlement-currency equivalent of a cart total for
// informational display. No persisted state is touched, so the call can be
// repeated every time the cart changes.
func (u *CheckoutUseCase) Preview(displayTotal decimal.Decimal) (decimal.Decimal, error) {
	if displayTotal.IsNegative() {
		return decimal.Decimal{}, domainErrors.ErrInvalidAmount
	}
	return u.converter.ToSettlement(displayTotal), nil
}

// FinalizeOrder reconciles a just-finalized cart total. The display amount
// and its settlement conversion are stashed in the checkout session, and the
// order is created with its generic total overwritten to the settlement
// amount: that is the value the gateway will see and charge. Returns whether
// the order was newly created.
func (u *CheckoutUseCase) FinalizeOrder(ctx context.Context, orderID string, displayTotal decimal.Decimal) (*model.Order, bool, error) {
	if displayTotal.IsNegative() {
		return nil, false, domainErrors.ErrInvalidAmount
	}
	if orderID == "" {
		orderID = uuid.NewString()
	}

	converted := u.converter.ToSettlement(displayTotal)
	u.sessions.Put(orderID, model.PendingTotals{Display: displayTotal, Converted: converted})

	order, created, err := u.orders.Create(ctx, orderID, converted)
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}

// PersistOrderMeta consumes the pending checkout totals and writes them as
// the order's permanent display/converted fields. The totals are write-once;
// a lost session surfaces as ErrMissingCheckoutSession instead of silently
// persisting empty fields.
func (u *CheckoutUseCase) PersistOrderMeta(ctx context.Context, orderID string) (*model.Order, error) {
	totals, ok := u.sessions.Take(orderID)
	if !ok {
		return nil, domainErrors.ErrMissingCheckoutSession
	}

	if err := u.orders.SetPersistedTotals(ctx, orderID, totals.Display, totals.Converted); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, orderID)
}
