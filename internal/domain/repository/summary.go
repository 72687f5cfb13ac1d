package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SummaryRepository updates the analytics sales summary table. Implementations
// must treat a missing summary table as a no-op rather than an error.
type SummaryRepository interface {
	OverwriteRefundRow(ctx context.Context, refundID string, total decimal.Decimal) error
}
