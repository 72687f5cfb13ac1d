package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/config"
	pkgAuth "github.com/UVLabs/gateway-currency/internal/pkg/auth"
	"github.com/UVLabs/gateway-currency/internal/server/http/handlers"
	"github.com/UVLabs/gateway-currency/internal/server/http/middleware"
	testhelpers "github.com/UVLabs/gateway-currency/internal/test"
)

func newTestRouter(t *testing.T) (*gin.Engine, *pkgAuth.SignatureStrategy, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	strategy := pkgAuth.NewSignatureStrategy("secret")
	hasher := pkgAuth.NewBcryptHasher(4)
	hash, err := hasher.Hash("admin-key")
	if err != nil {
		t.Fatalf("hash admin key: %v", err)
	}
	cfg := &config.Config{AdminKeyHash: hash}
	engine := Setup(testhelpers.ReconcilerFacadeStub{}, strategy, hasher, cfg, logger)
	return engine, strategy, "admin-key"
}

func TestSetupRoutes(t *testing.T) {
	engine, strategy, adminKey := newTestRouter(t)

	// Public preview endpoint needs no signature.
	body, _ := json.Marshal(map[string]string{"amount": "50.00"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preview, got %d", resp.Code)
	}

	// Hook routes reject unsigned requests.
	body, _ = json.Marshal(map[string]string{"order_id": "order-1", "total": "100.00"})
	req = httptest.NewRequest(http.MethodPost, "/api/hooks/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unsigned hook, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/hooks/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SignatureHeader, strategy.Sign(body))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for signed hook, got %d", resp.Code)
	}

	// Admin routes require the bearer key.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders/order-1", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing admin key, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders/order-1", nil)
	req.Header.Set("Authorization", "Bearer "+adminKey)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin order view, got %d", resp.Code)
	}
}

func TestSetupSignedGetRoute(t *testing.T) {
	engine, strategy, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hooks/orders/order-1/settlement-line", nil)
	req.Header.Set(middleware.SignatureHeader, strategy.Sign(nil))
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for signed settlement line, got %d", resp.Code)
	}
}

var _ handlers.ReconcilerFacade = (testhelpers.ReconcilerFacadeStub{})
