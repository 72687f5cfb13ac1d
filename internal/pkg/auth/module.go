package auth

import (
	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newKeyHasher),
	fx.Provide(newSignatureStrategy),
)

func newKeyHasher() KeyHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newSignatureStrategy(p strategyParams) *SignatureStrategy {
	return NewSignatureStrategy(p.Config.HookSecret)
}
