package render

import "github.com/shopspring/decimal"

// RowKind identifies the role of a row in the itemized totals breakdown.
type RowKind string

const (
	RowKindTotal  RowKind = "total"
	RowKindRefund RowKind = "refund"
	RowKindOther  RowKind = "other"
)

// TotalRow is one pre-rendered row of the itemized order-totals breakdown.
type TotalRow struct {
	Kind  RowKind
	Label string
	Value string
}

// SubstituteRows rewrites the total and refund rows of an itemized
// breakdown with display-currency amounts. Refund rows are matched to the
// persisted display refund amounts in order. When at least one refund row is
// present the total row is recomputed as displayTotal minus the summed
// display refunds instead of trusting any settlement-derived figure. Rows
// whose embedded amount cannot be located are left unchanged.
func SubstituteRows(rows []TotalRow, displayTotal decimal.Decimal, refundAmounts []decimal.Decimal) []TotalRow {
	hasRefund := false
	for _, row := range rows {
		if row.Kind == RowKindRefund {
			hasRefund = true
			break
		}
	}

	total := displayTotal
	if hasRefund {
		refunded := decimal.Zero
		for _, amount := range refundAmounts {
			refunded = refunded.Add(amount)
		}
		total = displayTotal.Sub(refunded)
	}

	out := make([]TotalRow, len(rows))
	copy(out, rows)

	nextRefund := 0
	for i, row := range out {
		switch row.Kind {
		case RowKindTotal:
			if patched, ok := ReplaceAmount(row.Value, total); ok {
				out[i].Value = patched
			}
		case RowKindRefund:
			if nextRefund >= len(refundAmounts) {
				continue
			}
			if patched, ok := ReplaceAmount(row.Value, refundAmounts[nextRefund]); ok {
				out[i].Value = patched
			}
			nextRefund++
		}
	}
	return out
}
