package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
	testhelpers "github.com/UVLabs/gateway-currency/internal/test"
)

func TestNewRefundProcessorDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	proc := NewRefundProcessor(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func TestRefundProcessorProcessesEvents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]gateway.RefundEvent{{
			{RefundID: "refund-1", OrderID: "order-1", Amount: decimal.RequireFromString("9.13"), IsPartial: true},
		}},
	}
	proc := NewRefundProcessor(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		acked := len(facade.Acked) > 0
		facade.Unlock()
		if acked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for refund processing")
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Applied) == 0 {
		t.Fatal("expected refund to be applied")
	}
	if facade.Applied[0].RefundID != "refund-1" || !facade.Applied[0].IsPartial {
		t.Fatalf("unexpected applied refund %+v", facade.Applied[0])
	}
	if facade.Acked[0] != "refund-1" {
		t.Fatalf("expected refund-1 acked, got %q", facade.Acked[0])
	}
}

func TestRefundProcessorSkipsAckOnFailure(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	applyErr := errors.New("db down")
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]gateway.RefundEvent{{
			{RefundID: "refund-1", OrderID: "order-1", Amount: decimal.RequireFromString("5.00"), IsPartial: true},
		}},
	}
	facade.ApplyFn = func(ctx context.Context, orderID, refundID string, amount decimal.Decimal, partial bool) (*model.Refund, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, applyErr
	}

	proc := NewRefundProcessor(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&attempts) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for apply attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Acked) != 0 {
		t.Fatal("failed refund must not be acked")
	}
}

func TestRefundProcessorHandlesRateLimiting(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{}
	facade.PendingFn = func(ctx context.Context, limit int) ([]gateway.RefundEvent, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return nil, gateway.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
		}
		return []gateway.RefundEvent{
			{RefundID: "refund-1", OrderID: "order-1", Amount: decimal.RequireFromString("9.13"), IsPartial: true},
		}, nil
	}

	proc := NewRefundProcessor(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		if len(facade.Acked) > 0 {
			facade.Unlock()
			break
		}
		facade.Unlock()
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	proc.Stop()
}
