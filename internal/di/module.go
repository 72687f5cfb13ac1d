package di

import (
	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/adapter/reportcache"
	"github.com/UVLabs/gateway-currency/internal/app"
	"github.com/UVLabs/gateway-currency/internal/config"
	"github.com/UVLabs/gateway-currency/internal/currency"
	"github.com/UVLabs/gateway-currency/internal/logger"
	"github.com/UVLabs/gateway-currency/internal/pkg/auth"
	"github.com/UVLabs/gateway-currency/internal/server/http/router"
	"github.com/UVLabs/gateway-currency/internal/session"
	"github.com/UVLabs/gateway-currency/internal/storage/postgres"
	"github.com/UVLabs/gateway-currency/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		currency.Module,
		session.Module,
		postgres.Module,
		gateway.Module,
		reportcache.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
