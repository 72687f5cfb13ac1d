package test

import (
	"context"
	"sync"

	"github.com/UVLabs/gateway-currency/internal/adapter/gateway"
	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// InvalidatorStub counts cache invalidations.
type InvalidatorStub struct {
	InvalidateFn func(context.Context) error

	mu    sync.Mutex
	calls int
}

// Invalidate increments the counter or delegates to the override.
func (s *InvalidatorStub) Invalidate(ctx context.Context) error {
	if s.InvalidateFn != nil {
		return s.InvalidateFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}

// Calls reports how many invalidations were observed.
func (s *InvalidatorStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// GatewayClientStub feeds scripted refund events to the poller.
type GatewayClientStub struct {
	PendingFn func(context.Context, int) ([]gateway.RefundEvent, error)
	AckFn     func(context.Context, string) error

	mu    sync.Mutex
	Acked []string
}

// PendingRefunds returns the scripted batch.
func (s *GatewayClientStub) PendingRefunds(ctx context.Context, limit int) ([]gateway.RefundEvent, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	return nil, gateway.ErrNoPendingRefunds
}

// Ack records acknowledged refund identifiers.
func (s *GatewayClientStub) Ack(ctx context.Context, refundID string) error {
	if s.AckFn != nil {
		return s.AckFn(ctx, refundID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Acked = append(s.Acked, refundID)
	return nil
}

// AckedIDs returns a copy of the acknowledged identifiers.
func (s *GatewayClientStub) AckedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Acked))
	copy(out, s.Acked)
	return out
}

// SessionStoreStub keeps pending totals in a plain map.
type SessionStoreStub struct {
	Entries map[string]model.PendingTotals
}

// NewSessionStoreStub constructs the stub with an initialized map.
func NewSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{Entries: make(map[string]model.PendingTotals)}
}

// Put stores pending totals for the order.
func (s *SessionStoreStub) Put(orderID string, totals model.PendingTotals) {
	if s.Entries == nil {
		s.Entries = make(map[string]model.PendingTotals)
	}
	s.Entries[orderID] = totals
}

// Peek returns the stored totals without consuming them.
func (s *SessionStoreStub) Peek(orderID string) (model.PendingTotals, bool) {
	totals, ok := s.Entries[orderID]
	return totals, ok
}

// Take consumes and returns the stored totals.
func (s *SessionStoreStub) Take(orderID string) (model.PendingTotals, bool) {
	totals, ok := s.Entries[orderID]
	if ok {
		delete(s.Entries, orderID)
	}
	return totals, ok
}
