package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund records a gateway-reported refund re-expressed in display currency.
type Refund struct {
	ID               string
	OrderID          string
	SettlementAmount decimal.Decimal
	DisplayAmount    decimal.Decimal
	RunningTotal     decimal.Decimal
	IsPartial        bool
	ProcessedAt      time.Time
}
