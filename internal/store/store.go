package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wordguess/internal/model"
)

// RecordTTL is how long an unconsumed record stays visible. Records older
// than this never appear in a pending snapshot, purged or not.
const RecordTTL = 60 * time.Second

// Key prefixes. A record's id doubles as its storage key, so the guess and
// event namespaces can never collide.
const (
	GuessPrefix = "guess-"
	EventPrefix = "event-"
)

// EventStore is the transient holding area between producers and the single
// consumer. Business no-ops (unknown id, re-delete) never error; only
// storage-layer faults propagate.
type EventStore interface {
	PutGuess(ctx context.Context, g *model.GuessRecord) error
	PutEvent(ctx context.Context, e *model.ActionRecord) error
	// ListPending returns all unprocessed records within TTL, snapshot
	// semantics, unordered.
	ListPending(ctx context.Context) (*model.PendingSnapshot, error)
	// Delete removes a record by id. Idempotent.
	Delete(ctx context.Context, id string) error
}

// NewGuessID returns a fresh collision-resistant guess id.
func NewGuessID() string {
	return fmt.Sprintf("%s%d-%s", GuessPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewEventID returns a fresh collision-resistant event id.
func NewEventID() string {
	return fmt.Sprintf("%s%d-%s", EventPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func expired(timestamp int64, now time.Time) bool {
	return now.UnixMilli()-timestamp >= RecordTTL.Milliseconds()
}
