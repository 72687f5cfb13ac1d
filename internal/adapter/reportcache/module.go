package reportcache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/config"
)

// Module exposes the report cache invalidator to the fx graph.
var Module = fx.Provide(newInvalidator)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newInvalidator(p cacheParams) (Invalidator, error) {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("report cache disabled, no redis address configured")
		return Noop{}, nil
	}

	client, err := Connect(p.Config.RedisAddress)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return NewRedisCache(client), nil
}
