package model

import "github.com/shopspring/decimal"

// PendingTotals holds the pair of totals computed at checkout before the
// order record exists. They live in the transient session until the
// order-meta persistence event consumes them.
type PendingTotals struct {
	Display   decimal.Decimal
	Converted decimal.Decimal
}
