package repository

import (
	"context"

	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// RefundRepository manages refund records attached to orders.
type RefundRepository interface {
	Save(ctx context.Context, refund *model.Refund) error
	ListByOrder(ctx context.Context, orderID string) ([]model.Refund, error)
}
