package store

import (
	"context"
	"testing"
	"time"

	"wordguess/internal/model"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(s.Close)
	return s
}

func TestMemoryStore_ListPending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &model.GuessRecord{ID: NewGuessID(), User: "Ana", Word: "PERRO", Timestamp: time.Now().UnixMilli()}
	e := &model.ActionRecord{ID: NewEventID(), User: "Bot", Event: model.EventNewRound, Timestamp: time.Now().UnixMilli()}

	if err := s.PutGuess(ctx, g); err != nil {
		t.Fatalf("PutGuess: %v", err)
	}
	if err := s.PutEvent(ctx, e); err != nil {
		t.Fatalf("PutEvent: %v", err)
	}

	snap, err := s.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(snap.Guesses) != 1 || len(snap.Events) != 1 {
		t.Fatalf("expected 1 guess and 1 event, got %d and %d", len(snap.Guesses), len(snap.Events))
	}
	if snap.Guesses[0].ID != g.ID {
		t.Fatalf("expected guess %s, got %s", g.ID, snap.Guesses[0].ID)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stale := &model.GuessRecord{
		ID:        NewGuessID(),
		User:      "Ana",
		Word:      "PERRO",
		Timestamp: time.Now().UnixMilli() - 61_000,
	}
	if err := s.PutGuess(ctx, stale); err != nil {
		t.Fatalf("PutGuess: %v", err)
	}

	snap, err := s.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(snap.Guesses) != 0 {
		t.Fatalf("expired record must not be listed, got %d guesses", len(snap.Guesses))
	}
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &model.GuessRecord{ID: NewGuessID(), User: "Ana", Word: "PERRO", Timestamp: time.Now().UnixMilli()}
	if err := s.PutGuess(ctx, g); err != nil {
		t.Fatalf("PutGuess: %v", err)
	}

	if err := s.Delete(ctx, "nonexistent"); err != nil {
		t.Fatalf("delete of unknown id must be a no-op, got %v", err)
	}
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("double delete must be a no-op, got %v", err)
	}

	snap, _ := s.ListPending(ctx)
	if len(snap.Guesses) != 0 {
		t.Fatalf("deleted record still listed")
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	_ = s.PutGuess(ctx, &model.GuessRecord{ID: "guess-old", Timestamp: now - 120_000})
	_ = s.PutEvent(ctx, &model.ActionRecord{ID: "event-old", Event: model.EventRevealLetter, Timestamp: now - 120_000})
	_ = s.PutGuess(ctx, &model.GuessRecord{ID: "guess-fresh", Timestamp: now})

	s.sweep(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.guesses) != 1 || len(s.events) != 0 {
		t.Fatalf("sweep kept %d guesses and %d events, want 1 and 0", len(s.guesses), len(s.events))
	}
	if _, ok := s.guesses["guess-fresh"]; !ok {
		t.Fatalf("sweep removed the fresh record")
	}
}

func TestNewIDs_DistinctNamespaces(t *testing.T) {
	g := NewGuessID()
	e := NewEventID()
	if g == e {
		t.Fatalf("guess and event ids must never collide")
	}
	if g[:len(GuessPrefix)] != GuessPrefix {
		t.Fatalf("guess id %q missing prefix", g)
	}
	if e[:len(EventPrefix)] != EventPrefix {
		t.Fatalf("event id %q missing prefix", e)
	}
}
