// Package render patches authoritative amounts into strings that the
// platform's display-formatting layer has already rendered. The surrounding
// markup, currency symbols, and layout are opaque and must survive
// untouched; only the embedded numeric token is replaced.
package render

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/currency"
)

// amountToken matches the fixed amount convention used by the display
// formatter: optional comma groups, dot decimal, two decimal places.
var amountToken = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2}`)

// ReplaceAmount substitutes the first embedded amount token in rendered with
// the formatted authoritative amount. When no token can be located the input
// comes back unchanged and ok is false.
func ReplaceAmount(rendered string, amount decimal.Decimal) (out string, ok bool) {
	loc := amountToken.FindStringIndex(rendered)
	if loc == nil {
		return rendered, false
	}
	return rendered[:loc[0]] + currency.Format(amount) + rendered[loc[1]:], true
}

// ExtractAmount pulls the first embedded amount token out of a rendered
// string.
func ExtractAmount(rendered string) (decimal.Decimal, bool) {
	token := amountToken.FindString(rendered)
	if token == "" {
		return decimal.Decimal{}, false
	}
	d, err := currency.Parse(token)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
