package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes reconciliation lifecycle.
type OrderStatus string

const (
	OrderStatusCreated           OrderStatus = "CREATED"
	OrderStatusSettled           OrderStatus = "SETTLED"
	OrderStatusPartiallyRefunded OrderStatus = "PARTIALLY_REFUNDED"
	OrderStatusRefunded          OrderStatus = "REFUNDED"
)

// Order is the persisted record of a completed checkout. Total is the
// platform's generic mutable total field; DisplayTotal and ConvertedTotal
// are the write-once historical record of what the customer agreed to pay
// and what the gateway was actually charged.
type Order struct {
	ID             string
	Total          decimal.Decimal
	DisplayTotal   *decimal.Decimal
	ConvertedTotal *decimal.Decimal
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPersistedTotals reports whether the write-once currency fields exist.
func (o *Order) HasPersistedTotals() bool {
	return o.DisplayTotal != nil && o.ConvertedTotal != nil
}
