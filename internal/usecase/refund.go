package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/adapter/reportcache"
	"github.com/UVLabs/gateway-currency/internal/currency"
	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	"github.com/UVLabs/gateway-currency/internal/domain/repository"
)

// RefundUseCase reconciles gateway-reported refunds back into the display
// currency and keeps the analytics summary in step.
type RefundUseCase struct {
	converter *currency.Converter
	orders    repository.OrderRepository
	refunds   repository.RefundRepository
	summaries repository.SummaryRepository
	cache     reportcache.Invalidator
	logger    *slog.Logger
}

// NewRefundUseCase constructs RefundUseCase.
func NewRefundUseCase(
	converter *currency.Converter,
	orders repository.OrderRepository,
	refunds repository.RefundRepository,
	summaries repository.SummaryRepository,
	cache reportcache.Invalidator,
	logger *slog.Logger,
) *RefundUseCase {
	return &RefundUseCase{
		converter: converter,
		orders:    orders,
		refunds:   refunds,
		summaries: summaries,
		cache:     cache,
		logger:    logger,
	}
}

// Apply records a refund. A partial refund is converted amount-for-amount
// from the gateway's settlement figure. A full refund uses the order's
// persisted display total verbatim: it must equal what the customer was
// originally told they paid, and a re-derived conversion could drift from
// that under non-reciprocal rates.
func (u *RefundUseCase) Apply(ctx context.Context, orderID, refundID string, settlementAmount decimal.Decimal, partial bool) (*model.Refund, error) {
	if settlementAmount.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if refundID == "" {
		refundID = uuid.NewString()
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var displayAmount decimal.Decimal
	if partial {
		displayAmount = u.converter.ToDisplay(settlementAmount)
	} else {
		if order.DisplayTotal == nil {
			return nil, domainErrors.ErrMissingCheckoutSession
		}
		displayAmount = *order.DisplayTotal
	}

	refund := &model.Refund{
		ID:               refundID,
		OrderID:          orderID,
		SettlementAmount: settlementAmount,
		DisplayAmount:    displayAmount,
		RunningTotal:     displayAmount.Neg(),
		IsPartial:        partial,
	}
	if err := u.refunds.Save(ctx, refund); err != nil {
		return nil, err
	}

	status := model.OrderStatusRefunded
	if partial {
		status = model.OrderStatusPartiallyRefunded
	}
	total := order.Total
	if order.DisplayTotal != nil {
		total = *order.DisplayTotal
	}
	if err := u.orders.SetTotal(ctx, orderID, total, status); err != nil {
		return nil, err
	}

	if err := u.summaries.OverwriteRefundRow(ctx, refund.ID, refund.RunningTotal); err != nil {
		return nil, err
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		// Reporting staleness must not block the refund itself.
		u.logger.Warn("sales aggregate invalidation failed",
			slog.String("refund", refund.ID),
			slog.String("error", err.Error()),
		)
	}

	return refund, nil
}
