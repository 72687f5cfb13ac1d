package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rates configures the fixed conversion pair. ToDisplay may be zero, in
// which case the reciprocal of ToSettlement is used.
type Rates struct {
	DisplayCode    string
	SettlementCode string
	ToSettlement   decimal.Decimal
	ToDisplay      decimal.Decimal
}

// Converter converts amounts between the display and settlement currencies
// using fixed rates. Both directions round half-up to 2 decimal places.
// Conversion is stateless: the same input always yields the same output.
type Converter struct {
	displayCode    string
	settlementCode string
	toSettlement   decimal.Decimal
	toDisplay      decimal.Decimal
}

// reciprocalScale keeps derived reverse rates precise enough that the extra
// rounding step stays below a cent for any realistic order total.
const reciprocalScale = 12

// NewConverter validates rates and builds a Converter. A missing reverse
// rate is derived as the reciprocal of the forward rate.
func NewConverter(r Rates) (*Converter, error) {
	if r.ToSettlement.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("display to settlement rate must be positive, got %s", r.ToSettlement)
	}
	toDisplay := r.ToDisplay
	if toDisplay.IsZero() {
		toDisplay = decimal.NewFromInt(1).DivRound(r.ToSettlement, reciprocalScale)
	}
	if toDisplay.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("settlement to display rate must be positive, got %s", toDisplay)
	}
	return &Converter{
		displayCode:    r.DisplayCode,
		settlementCode: r.SettlementCode,
		toSettlement:   r.ToSettlement,
		toDisplay:      toDisplay,
	}, nil
}

// ToSettlement converts a display-currency amount to the settlement currency.
func (c *Converter) ToSettlement(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.toSettlement).Round(2)
}

// ToDisplay converts a settlement-currency amount to the display currency.
func (c *Converter) ToDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.toDisplay).Round(2)
}

// DisplayCode returns the display currency code.
func (c *Converter) DisplayCode() string { return c.displayCode }

// SettlementCode returns the settlement currency code.
func (c *Converter) SettlementCode() string { return c.settlementCode }
