package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, orderID string, total decimal.Decimal) (*model.Order, bool, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	SetPersistedTotals(ctx context.Context, orderID string, display, converted decimal.Decimal) error
	SetTotal(ctx context.Context, orderID string, total decimal.Decimal, status model.OrderStatus) error
}
