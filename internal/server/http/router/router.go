package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/config"
	pkgAuth "github.com/UVLabs/gateway-currency/internal/pkg/auth"
	"github.com/UVLabs/gateway-currency/internal/server/http/handlers"
	"github.com/UVLabs/gateway-currency/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(
	facade handlers.ReconcilerFacade,
	strategy *pkgAuth.SignatureStrategy,
	hasher pkgAuth.KeyHasher,
	cfg *config.Config,
	logger *slog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	refundHandler := handlers.NewRefundHandler(facade)
	renderHandler := handlers.NewRenderHandler(facade)

	api := engine.Group("/api")

	checkout := api.Group("/checkout")
	checkout.POST("/preview", checkoutHandler.Preview)
	checkout.GET("/preview", checkoutHandler.PreviewPlain)

	hooks := api.Group("/hooks")
	hooks.Use(middleware.HookSignature(strategy))
	hooks.POST("/orders", checkoutHandler.Finalize)
	hooks.POST("/orders/:id/meta", checkoutHandler.PersistMeta)
	hooks.POST("/orders/:id/confirmation", orderHandler.Confirm)
	hooks.POST("/orders/:id/refunds", refundHandler.Apply)
	hooks.GET("/orders/:id/settlement-line", orderHandler.SettlementLine)
	hooks.POST("/render/total", renderHandler.Total)
	hooks.POST("/render/rows", renderHandler.Rows)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(hasher, cfg.AdminKeyHash))
	admin.GET("/orders/:id", orderHandler.AdminGet)

	return engine
}
