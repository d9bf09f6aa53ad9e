package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"wordguess/internal/metrics"
	"wordguess/internal/model"
)

// Dedup set capacity. Two TTL windows of records at peak ingest rates fit
// comfortably; anything older has long since expired from the store.
const dedupCapacity = 4096

// ApplyService is the consumer-side authority: the only component that
// turns inbound records into game-state mutations. Each id is applied at
// most once per process lifetime (bounded dedup set), and every surfaced
// record is reported back for acknowledgment whether it was applied,
// deduplicated or rejected by a precondition.
type ApplyService struct {
	game  *GameService
	seen  *dedupSet
	log   zerolog.Logger
	stats applyCounters
}

type applyCounters struct {
	guessesWon    atomic.Uint64
	guessesMissed atomic.Uint64
	eventsApplied atomic.Uint64
	eventsSkipped atomic.Uint64
	deduplicated  atomic.Uint64
}

// ApplyStats is a point-in-time snapshot of engine counters for the debug
// surface.
type ApplyStats struct {
	GuessesWon    uint64 `json:"guessesWon"`
	GuessesMissed uint64 `json:"guessesMissed"`
	EventsApplied uint64 `json:"eventsApplied"`
	EventsSkipped uint64 `json:"eventsSkipped"`
	Deduplicated  uint64 `json:"deduplicated"`
	DedupSetSize  int    `json:"dedupSetSize"`
}

// NewApplyService creates a new apply engine bound to the game service.
func NewApplyService(game *GameService, log zerolog.Logger) *ApplyService {
	return &ApplyService{
		game: game,
		seen: newDedupSet(dedupCapacity),
		log:  log,
	}
}

// ProcessSnapshot runs one tick's snapshot through dedup and apply, and
// returns the ids to acknowledge. It is called from a single goroutine (the
// poller loop); records within a tick are processed in snapshot order, which
// callers must not rely on.
func (s *ApplyService) ProcessSnapshot(ctx context.Context, snap *model.PendingSnapshot) []string {
	done := make([]string, 0, len(snap.Guesses)+len(snap.Events))

	for _, g := range snap.Guesses {
		if s.seen.Seen(g.ID) {
			s.stats.deduplicated.Add(1)
			metrics.RecordsDeduplicated.Inc()
			done = append(done, g.ID)
			continue
		}
		// Added before the effect so a mid-apply failure can never lead to
		// a second application of the same id.
		s.seen.Add(g.ID)
		s.applyGuess(ctx, g)
		done = append(done, g.ID)
	}

	for _, e := range snap.Events {
		if s.seen.Seen(e.ID) {
			s.stats.deduplicated.Add(1)
			metrics.RecordsDeduplicated.Inc()
			done = append(done, e.ID)
			continue
		}
		s.seen.Add(e.ID)
		s.applyEvent(ctx, e)
		done = append(done, e.ID)
	}

	return done
}

// Stats returns current engine counters.
func (s *ApplyService) Stats() ApplyStats {
	return ApplyStats{
		GuessesWon:    s.stats.guessesWon.Load(),
		GuessesMissed: s.stats.guessesMissed.Load(),
		EventsApplied: s.stats.eventsApplied.Load(),
		EventsSkipped: s.stats.eventsSkipped.Load(),
		Deduplicated:  s.stats.deduplicated.Load(),
		DedupSetSize:  s.seen.Len(),
	}
}

func (s *ApplyService) applyGuess(ctx context.Context, g model.GuessRecord) {
	won, _ := s.game.TryGuess(ctx, g.User, g.Word)
	if won {
		s.stats.guessesWon.Add(1)
		metrics.RecordsApplied.WithLabelValues("guess", "won").Inc()
		return
	}
	// Wrong word, or no running round: a defined no-op, not an error.
	s.stats.guessesMissed.Add(1)
	metrics.RecordsApplied.WithLabelValues("guess", "missed").Inc()
	s.log.Debug().Str("id", g.ID).Str("user", g.User).Msg("guess consumed without effect")
}

func (s *ApplyService) applyEvent(ctx context.Context, e model.ActionRecord) {
	applied := false
	switch e.Event {
	case model.EventRevealLetter:
		applied = s.game.RevealRandomLetter()
	case model.EventDoublePoints:
		duration := 0
		if e.Duration != nil {
			duration = *e.Duration
		}
		applied = s.game.ActivateDoublePoints(duration)
	case model.EventNewRound:
		err := s.game.StartRandomRound(ctx)
		if errors.Is(err, ErrEmptyWordList) {
			s.log.Warn().Str("id", e.ID).Msg("new round requested but word list is empty")
		} else if err != nil {
			s.log.Error().Err(err).Str("id", e.ID).Msg("failed to start round")
		} else {
			applied = true
		}
	default:
		// Ingest enforces the closed enumeration; anything else here is a
		// stale record from an older deployment. Consume it.
		s.log.Warn().Str("id", e.ID).Str("event", string(e.Event)).Msg("unknown event kind consumed")
	}

	if applied {
		s.stats.eventsApplied.Add(1)
		metrics.RecordsApplied.WithLabelValues("event", "applied").Inc()
	} else {
		s.stats.eventsSkipped.Add(1)
		metrics.RecordsApplied.WithLabelValues("event", "skipped").Inc()
	}
}
