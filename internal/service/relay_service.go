package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wordguess/internal/metrics"
	"wordguess/internal/model"
	"wordguess/internal/store"
)

// RelayService is the producer side of the event relay: it validates and
// normalizes inbound submissions into store records, serves the pending
// snapshot and handles acknowledgments.
type RelayService struct {
	store store.EventStore
	log   zerolog.Logger
}

// NewRelayService creates a new relay service
func NewRelayService(st store.EventStore, log zerolog.Logger) *RelayService {
	return &RelayService{store: st, log: log}
}

// SubmitGuess validates and stores a word submission. The word is uppercased
// and trimmed here so every downstream consumer sees canonical form.
func (s *RelayService) SubmitGuess(ctx context.Context, user, word string) (*model.GuessRecord, error) {
	user = strings.TrimSpace(user)
	word = strings.ToUpper(strings.TrimSpace(word))
	if user == "" {
		return nil, ErrMissingUser
	}
	if word == "" {
		return nil, ErrMissingWord
	}

	rec := &model.GuessRecord{
		ID:        store.NewGuessID(),
		User:      user,
		Word:      word,
		Timestamp: time.Now().UnixMilli(),
		Processed: false,
	}
	if err := s.store.PutGuess(ctx, rec); err != nil {
		return nil, err
	}

	metrics.RecordsIngested.WithLabelValues("guess").Inc()
	s.log.Debug().Str("id", rec.ID).Str("user", user).Msg("guess queued")
	return rec, nil
}

// SubmitAction validates and stores a named action. Unknown kinds are
// rejected before any record is created.
func (s *RelayService) SubmitAction(ctx context.Context, user, kind string, duration *int) (*model.ActionRecord, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrMissingUser
	}
	event := model.EventKind(strings.TrimSpace(kind))
	if !event.Valid() {
		return nil, ErrInvalidEvent
	}

	rec := &model.ActionRecord{
		ID:        store.NewEventID(),
		User:      user,
		Event:     event,
		Duration:  duration,
		Timestamp: time.Now().UnixMilli(),
		Processed: false,
	}
	if err := s.store.PutEvent(ctx, rec); err != nil {
		return nil, err
	}

	metrics.RecordsIngested.WithLabelValues("event").Inc()
	s.log.Debug().Str("id", rec.ID).Str("event", string(event)).Msg("action queued")
	return rec, nil
}

// Pending returns the current snapshot of unprocessed records. Storage
// faults degrade to an empty snapshot so a backend outage never reaches the
// consumer loop as an error.
func (s *RelayService) Pending(ctx context.Context) *model.PendingSnapshot {
	snap, err := s.store.ListPending(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("pending list unavailable, degrading to empty")
		return model.EmptySnapshot()
	}
	return snap
}

// Acknowledge removes a record from the store. Unknown or already-removed
// ids are a no-op; an empty id is accepted and ignored.
func (s *RelayService) Acknowledge(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id)
}
