package store

import (
	"context"
	"sync"
	"time"

	"wordguess/internal/model"
)

const sweepInterval = 5 * time.Second

// MemoryStore is the in-process event store used when no Redis address is
// configured (local development) and in tests. A janitor goroutine sweeps
// expired records so the store stays bounded even with no consumer.
type MemoryStore struct {
	mu      sync.RWMutex
	guesses map[string]model.GuessRecord
	events  map[string]model.ActionRecord
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory event store and starts its janitor.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		guesses: make(map[string]model.GuessRecord),
		events:  make(map[string]model.ActionRecord),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Close stops the janitor. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) PutGuess(ctx context.Context, g *model.GuessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guesses[g.ID] = *g
	return nil
}

func (s *MemoryStore) PutEvent(ctx context.Context, e *model.ActionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = *e
	return nil
}

func (s *MemoryStore) ListPending(ctx context.Context) (*model.PendingSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.EmptySnapshot()
	now := time.Now()
	for _, g := range s.guesses {
		if !g.Processed && !expired(g.Timestamp, now) {
			snap.Guesses = append(snap.Guesses, g)
		}
	}
	for _, e := range s.events {
		if !e.Processed && !expired(e.Timestamp, now) {
			snap.Events = append(snap.Events, e)
		}
	}
	return snap, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.guesses, id)
	delete(s.events, id)
	return nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.guesses {
		if expired(g.Timestamp, now) {
			delete(s.guesses, id)
		}
	}
	for id, e := range s.events {
		if expired(e.Timestamp, now) {
			delete(s.events, id)
		}
	}
}
