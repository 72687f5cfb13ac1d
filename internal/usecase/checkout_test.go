package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/currency"
	domainErrors "github.com/UVLabs/gateway-currency/internal/domain/errors"
	"github.com/UVLabs/gateway-currency/internal/test"
)

func newTestConverter(t *testing.T) *currency.Converter {
	t.Helper()
	conv, err := currency.NewConverter(currency.Rates{
		DisplayCode:    "USD",
		SettlementCode: "EUR",
		ToSettlement:   decimal.RequireFromString("0.9133"),
		ToDisplay:      decimal.RequireFromString("1.0950"),
	})
	if err != nil {
		t.Fatalf("unexpected converter error: %v", err)
	}
	return conv
}

func TestCheckoutPreview(t *testing.T) {
	uc := NewCheckoutUseCase(newTestConverter(t), test.NewSessionStoreStub(), test.NewOrderRepositoryStub())

	got, err := uc.Preview(decimal.RequireFromString("50.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("45.67"); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if _, err := uc.Preview(decimal.RequireFromString("-1")); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCheckoutFinalizeOrder(t *testing.T) {
	sessions := test.NewSessionStoreStub()
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(newTestConverter(t), sessions, orders)

	order, created, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected order to be created")
	}
	if want := decimal.RequireFromString("91.33"); !order.Total.Equal(want) {
		t.Fatalf("expected settlement total %s, got %s", want, order.Total)
	}

	totals, ok := sessions.Peek("order-1")
	if !ok {
		t.Fatal("expected pending totals in session")
	}
	if !totals.Display.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("unexpected pending display total %s", totals.Display)
	}
	if !totals.Converted.Equal(decimal.RequireFromString("91.33")) {
		t.Fatalf("unexpected pending converted total %s", totals.Converted)
	}
}

func TestCheckoutFinalizeOrderDuplicate(t *testing.T) {
	sessions := test.NewSessionStoreStub()
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(newTestConverter(t), sessions, orders)

	if _, _, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("100.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, created, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected existing order to be reused")
	}
}

func TestCheckoutFinalizeOrderGeneratesID(t *testing.T) {
	sessions := test.NewSessionStoreStub()
	uc := NewCheckoutUseCase(newTestConverter(t), sessions, test.NewOrderRepositoryStub())

	order, _, err := uc.FinalizeOrder(context.Background(), "", decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Fatal("expected a generated order id")
	}
	if _, ok := sessions.Peek(order.ID); !ok {
		t.Fatal("expected session keyed by generated id")
	}
}

func TestCheckoutFinalizeOrderRejectsNegative(t *testing.T) {
	uc := NewCheckoutUseCase(newTestConverter(t), test.NewSessionStoreStub(), test.NewOrderRepositoryStub())

	if _, _, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("-5")); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCheckoutPersistOrderMeta(t *testing.T) {
	sessions := test.NewSessionStoreStub()
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(newTestConverter(t), sessions, orders)

	if _, _, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("100.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := uc.PersistOrderMeta(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DisplayTotal == nil || !order.DisplayTotal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("unexpected display total %v", order.DisplayTotal)
	}
	if order.ConvertedTotal == nil || !order.ConvertedTotal.Equal(decimal.RequireFromString("91.33")) {
		t.Fatalf("unexpected converted total %v", order.ConvertedTotal)
	}
	if _, ok := sessions.Peek("order-1"); ok {
		t.Fatal("expected session to be consumed")
	}
}

func TestCheckoutPersistOrderMetaMissingSession(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(newTestConverter(t), test.NewSessionStoreStub(), orders)

	if _, err := uc.PersistOrderMeta(context.Background(), "order-1"); !errors.Is(err, domainErrors.ErrMissingCheckoutSession) {
		t.Fatalf("expected ErrMissingCheckoutSession, got %v", err)
	}
	if len(orders.UpdateCalls) != 0 {
		t.Fatal("expected no writes on missing session")
	}
}

func TestCheckoutPersistOrderMetaImmutable(t *testing.T) {
	sessions := test.NewSessionStoreStub()
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(newTestConverter(t), sessions, orders)

	if _, _, err := uc.FinalizeOrder(context.Background(), "order-1", decimal.RequireFromString("100.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.PersistOrderMeta(context.Background(), "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second lifecycle event repopulates the session but must not overwrite.
	sessions.Put("order-1", mustTotals("200.00", "182.66"))
	if _, err := uc.PersistOrderMeta(context.Background(), "order-1"); !errors.Is(err, domainErrors.ErrImmutableTotals) {
		t.Fatalf("expected ErrImmutableTotals, got %v", err)
	}
}
