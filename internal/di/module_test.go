package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/adapter/reportcache"
	"github.com/UVLabs/gateway-currency/internal/app"
	"github.com/UVLabs/gateway-currency/internal/config"
	"github.com/UVLabs/gateway-currency/internal/domain/repository"
	"github.com/UVLabs/gateway-currency/internal/storage/postgres"
	"github.com/UVLabs/gateway-currency/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:              ":0",
		DatabaseURI:             "postgres://stub",
		GatewayAddress:          "http://localhost",
		HookSecret:              "secret",
		DisplayCurrency:         "USD",
		SettlementCurrency:      "EUR",
		DisplayToSettlementRate: "0.9133",
		SessionTTL:              time.Minute,
		RefundPollInterval:      time.Millisecond,
		WorkerPoolSize:          1,
		ShutdownTimeout:         time.Millisecond,
		MaxRefundBatch:          1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()
	refundRepo := &test.RefundRepositoryStub{}
	summaryRepo := &test.SummaryRepositoryStub{}
	gatewayStub := &test.GatewayClientStub{}
	cacheStub := &test.InvalidatorStub{}

	var facade *app.ReconcilerFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.RefundRepository(refundRepo)),
			fx.Replace(repository.SummaryRepository(summaryRepo)),
			fx.Replace(gateway.Client(gatewayStub)),
			fx.Replace(reportcache.Invalidator(cacheStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected reconciler facade instance")
	}
}
