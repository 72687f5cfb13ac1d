package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// RefundFacade exposes the subset of application functionality required by the worker.
type RefundFacade interface {
	PendingRefunds(ctx context.Context, limit int) ([]gateway.RefundEvent, error)
	ApplyRefund(ctx context.Context, orderID, refundID string, settlementAmount decimal.Decimal, partial bool) (*model.Refund, error)
	AckRefund(ctx context.Context, refundID string) error
}

// RefundProcessor polls the payment gateway for refund events and reconciles
// them concurrently.
type RefundProcessor struct {
	facade       RefundFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan gateway.RefundEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRefundProcessor constructs the refund processor worker pool.
func NewRefundProcessor(facade RefundFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *RefundProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &RefundProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan gateway.RefundEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (p *RefundProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *RefundProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *RefundProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *RefundProcessor) fetchAndDispatch(ctx context.Context) {
	events, err := p.facade.PendingRefunds(ctx, p.batchSize)
	if err != nil {
		if errors.Is(err, gateway.ErrNoPendingRefunds) {
			return
		}
		var rateLimited gateway.TooManyRequestsError
		if errors.As(err, &rateLimited) {
			p.logger.Warn("gateway rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			sleepCtx(ctx, rateLimited.RetryAfter)
			return
		}
		p.logger.Error("fetch pending refunds failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- event:
		}
	}
}

func (p *RefundProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleEvent(ctx, event)
		}
	}
}

func (p *RefundProcessor) handleEvent(ctx context.Context, event gateway.RefundEvent) {
	if _, err := p.facade.ApplyRefund(ctx, event.OrderID, event.RefundID, event.Amount, event.IsPartial); err != nil {
		// Not acked: the gateway will redeliver and the upsert keeps a retry safe.
		p.logger.Error("apply refund failed",
			slog.String("order", event.OrderID),
			slog.String("refund", event.RefundID),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := p.facade.AckRefund(ctx, event.RefundID); err != nil {
		p.logger.Error("ack refund failed",
			slog.String("refund", event.RefundID),
			slog.String("error", err.Error()),
		)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
