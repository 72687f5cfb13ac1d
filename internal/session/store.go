// Package session holds checkout totals between the moment the platform
// finalizes a cart and the moment the order's meta fields are persisted.
// Entries are scoped to a single order and expire if the second lifecycle
// event never fires.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/UVLabs/gateway-currency/internal/domain/model"
)

// Store keeps pending checkout totals keyed by order id.
type Store interface {
	Put(orderID string, totals model.PendingTotals)
	Peek(orderID string) (model.PendingTotals, bool)
	Take(orderID string) (model.PendingTotals, bool)
}

type entry struct {
	totals  model.PendingTotals
	savedAt time.Time
}

// MemoryStore is an in-process TTL store. Each entry belongs to one
// shopper's checkout, so a single mutex is enough.
type MemoryStore struct {
	ttl     time.Duration
	sweep   time.Duration
	mu      sync.Mutex
	entries map[string]entry
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewMemoryStore constructs a store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	sweep := ttl / 2
	if sweep < time.Second {
		sweep = time.Second
	}
	return &MemoryStore{
		ttl:     ttl,
		sweep:   sweep,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put stashes pending totals for an order, replacing any previous value.
func (s *MemoryStore) Put(orderID string, totals model.PendingTotals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[orderID] = entry{totals: totals, savedAt: s.now()}
}

// Peek returns pending totals without consuming them.
func (s *MemoryStore) Peek(orderID string) (model.PendingTotals, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[orderID]
	if !ok || s.expired(e) {
		return model.PendingTotals{}, false
	}
	return e.totals, true
}

// Take returns pending totals and removes them from the store.
func (s *MemoryStore) Take(orderID string) (model.PendingTotals, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[orderID]
	if !ok {
		return model.PendingTotals{}, false
	}
	delete(s.entries, orderID)
	if s.expired(e) {
		return model.PendingTotals{}, false
	}
	return e.totals, true
}

func (s *MemoryStore) expired(e entry) bool {
	return s.now().Sub(e.savedAt) > s.ttl
}

// Start launches the background janitor removing expired entries.
func (s *MemoryStore) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				s.evictExpired()
			}
		}
	}()
}

// Stop terminates the janitor and waits for it to exit.
func (s *MemoryStore) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}
