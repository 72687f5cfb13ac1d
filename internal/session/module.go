package session

import (
	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/config"
)

// Module wires the checkout session store for dependency injection.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newStore(p storeParams) (Store, *MemoryStore) {
	store := NewMemoryStore(p.Config.SessionTTL)
	return store, store
}
