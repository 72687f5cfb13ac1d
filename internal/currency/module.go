package currency

import (
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/config"
)

// Module exposes the currency converter to the fx graph.
var Module = fx.Provide(newConverter)

type converterParams struct {
	fx.In

	Config *config.Config
}

func newConverter(p converterParams) (*Converter, error) {
	toSettlement, err := decimal.NewFromString(p.Config.DisplayToSettlementRate)
	if err != nil {
		return nil, err
	}

	var toDisplay decimal.Decimal
	if p.Config.SettlementToDisplayRate != "" {
		if toDisplay, err = decimal.NewFromString(p.Config.SettlementToDisplayRate); err != nil {
			return nil, err
		}
	}

	return NewConverter(Rates{
		DisplayCode:    p.Config.DisplayCurrency,
		SettlementCode: p.Config.SettlementCurrency,
		ToSettlement:   toSettlement,
		ToDisplay:      toDisplay,
	})
}
