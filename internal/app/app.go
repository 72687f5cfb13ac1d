package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/config"
	"github.com/UVLabs/gateway-currency/internal/server/http/handlers"
	"github.com/UVLabs/gateway-currency/internal/session"
	"github.com/UVLabs/gateway-currency/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewReconcilerFacade,
		newHTTPServer,
		newRefundProcessor,
		func(c gateway.Client) RefundSource { return c },
		func(f *ReconcilerFacade) handlers.ReconcilerFacade { return f },
		func(f *ReconcilerFacade) worker.RefundFacade { return f },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade worker.RefundFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRefundProcessor(p workerParams) *worker.RefundProcessor {
	return worker.NewRefundProcessor(
		p.Facade,
		p.Config.RefundPollInterval,
		p.Config.MaxRefundBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.RefundProcessor
	Sessions   *session.MemoryStore
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting gateway currency service", slog.String("addr", p.Server.Addr))
			p.Sessions.Start(ctx)
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			p.Sessions.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("gateway currency service stopped")
			return nil
		},
	})
}
