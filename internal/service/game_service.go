package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wordguess/internal/cache"
	"wordguess/internal/model"
	"wordguess/internal/repository"
)

const (
	basePoints     = 10
	timerWarningAt = 10 // seconds remaining
)

// GameService owns the authoritative round state. Every mutation flows
// through one of its methods, serialized by a single mutex, so the round
// state machine is testable in isolation and never raced by the clock loop,
// the apply engine, or host endpoints.
type GameService struct {
	mu    sync.Mutex
	state model.GameState
	cfg   model.GameConfig

	words       repository.WordRepo
	rounds      repository.RoundRepo
	leaderboard cache.LeaderboardCache
	notifier    Notifier
	log         zerolog.Logger
}

// NewGameService creates a new game service in the Idle state.
func NewGameService(
	words repository.WordRepo,
	rounds repository.RoundRepo,
	leaderboard cache.LeaderboardCache,
	cfg model.GameConfig,
	log zerolog.Logger,
) *GameService {
	return &GameService{
		state: model.GameState{
			Status:          model.RoundIdle,
			RevealedIndices: []int{},
		},
		cfg:         cfg,
		words:       words,
		rounds:      rounds,
		leaderboard: leaderboard,
		notifier:    NoopNotifier{},
		log:         log,
	}
}

// SetNotifier sets the sink for state-transition notifications.
func (s *GameService) SetNotifier(n Notifier) {
	s.notifier = n
}

// State returns a copy of the current round state.
func (s *GameService) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.RevealedIndices = append([]int(nil), s.state.RevealedIndices...)
	return state
}

// Config returns the round configuration.
func (s *GameService) Config() model.GameConfig {
	return s.cfg
}

// StartRound starts a fresh round with the given word, resetting all
// round-scoped state. A running round is replaced.
func (s *GameService) StartRound(word, hint string) error {
	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return ErrMissingWord
	}

	s.mu.Lock()
	s.state = model.GameState{
		Word:            word,
		Hint:            strings.TrimSpace(hint),
		RevealedIndices: []int{},
		Status:          model.RoundRunning,
		StartedAt:       time.Now().UnixMilli(),
		Duration:        s.cfg.RoundDuration,
		TimeLeft:        s.cfg.RoundDuration,
	}
	s.mu.Unlock()

	s.log.Info().Str("word", word).Msg("round started")
	s.notifier.Notify(AlertRoundStart, map[string]interface{}{
		"word":     word,
		"hint":     hint,
		"duration": s.cfg.RoundDuration,
	})
	return nil
}

// StartRandomRound starts a round with a random word from the word list,
// avoiding the current word when the list has alternatives. An empty word
// list is a reportable condition, not a crash.
func (s *GameService) StartRandomRound(ctx context.Context) error {
	entries, err := s.words.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrEmptyWordList
	}

	current := s.State().Word
	entry := pickWord(entries, current)
	return s.StartRound(entry.Word, entry.Hint)
}

// EndRound finishes the current round with no winner. No-op unless a round
// is running or paused.
func (s *GameService) EndRound(ctx context.Context) {
	s.mu.Lock()
	if s.state.Status != model.RoundRunning && s.state.Status != model.RoundPaused {
		s.mu.Unlock()
		return
	}
	elapsed := s.state.Duration - s.state.TimeLeft
	rec := s.finishLocked("", 0)
	s.mu.Unlock()

	s.log.Info().Str("word", rec.Word).Msg("round ended without winner")
	s.archive(ctx, rec)
	s.notifier.Notify(AlertRoundEnd, map[string]interface{}{
		"word":        rec.Word,
		"timeElapsed": elapsed,
	})
}

// TogglePause flips between Running and Paused. No-op in other states.
func (s *GameService) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.Status {
	case model.RoundRunning:
		s.state.Status = model.RoundPaused
	case model.RoundPaused:
		s.state.Status = model.RoundRunning
	}
}

// RevealRandomLetter reveals one uniformly random unrevealed position.
// Returns false when no round is running or every letter is already shown.
func (s *GameService) RevealRandomLetter() bool {
	s.mu.Lock()
	if s.state.Status != model.RoundRunning {
		s.mu.Unlock()
		return false
	}

	letters := []rune(s.state.Word)
	revealed := make(map[int]bool, len(s.state.RevealedIndices))
	for _, i := range s.state.RevealedIndices {
		revealed[i] = true
	}
	var hidden []int
	for i := range letters {
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		s.mu.Unlock()
		return false
	}

	pos := hidden[rand.IntN(len(hidden))]
	s.state.RevealedIndices = append(s.state.RevealedIndices, pos)
	letter := string(letters[pos])
	total := len(s.state.RevealedIndices)
	s.mu.Unlock()

	s.notifier.Notify(AlertLetterRevealed, map[string]interface{}{
		"letter":        letter,
		"position":      pos,
		"totalRevealed": total,
		"wordLength":    len(letters),
	})
	return true
}

// ActivateDoublePoints opens a double-points window for the given duration
// in seconds (config default when zero). No-op unless a round is running.
func (s *GameService) ActivateDoublePoints(duration int) bool {
	if duration <= 0 {
		duration = s.cfg.DoublePointsDuration
	}

	s.mu.Lock()
	if s.state.Status != model.RoundRunning {
		s.mu.Unlock()
		return false
	}
	s.state.DoublePointsUntil = time.Now().Add(time.Duration(duration) * time.Second).UnixMilli()
	s.mu.Unlock()

	s.notifier.Notify(AlertDoublePoints, map[string]interface{}{
		"duration": duration,
	})
	return true
}

// TryGuess compares a normalized guess against the current word. On an
// exact match while the round is running it credits the points (doubled
// inside an active double-points window), records the winner and finishes
// the round. In every other case nothing changes.
func (s *GameService) TryGuess(ctx context.Context, user, word string) (bool, int) {
	s.mu.Lock()
	if s.state.Status != model.RoundRunning || word != s.state.Word {
		s.mu.Unlock()
		return false, 0
	}

	points := basePoints
	if s.state.DoublePointsActive(time.Now()) {
		points *= 2
	}
	rec := s.finishLocked(user, points)
	s.mu.Unlock()

	if err := s.leaderboard.AddPoints(ctx, user, points); err != nil {
		s.log.Warn().Err(err).Str("user", user).Msg("failed to credit points")
	}
	s.log.Info().Str("user", user).Str("word", rec.Word).Int("points", points).Msg("round won")
	s.archive(ctx, rec)
	s.notifier.Notify(AlertWinner, map[string]interface{}{
		"playerName": user,
		"points":     points,
		"word":       rec.Word,
	})
	return true, points
}

// RunClock drives the countdown: one tick per second while the round is
// running. It emits the timer warning, schedules automatic letter reveals
// from elapsed time, and ends the round at zero. Stops when ctx is done.
func (s *GameService) RunClock(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *GameService) tick(ctx context.Context) {
	s.mu.Lock()
	if s.state.Status != model.RoundRunning {
		s.mu.Unlock()
		return
	}
	s.state.TimeLeft--
	timeLeft := s.state.TimeLeft
	elapsed := s.state.Duration - timeLeft
	wordLen := len([]rune(s.state.Word))
	needReveal := false
	if s.cfg.RevealInterval > 0 {
		due := elapsed / s.cfg.RevealInterval
		needReveal = due > len(s.state.RevealedIndices) && len(s.state.RevealedIndices) < wordLen
	}
	s.mu.Unlock()

	if timeLeft == timerWarningAt {
		s.notifier.Notify(AlertTimerWarning, map[string]interface{}{
			"timeLeft": timeLeft,
		})
	}
	if needReveal {
		s.RevealRandomLetter()
	}
	if timeLeft <= 0 {
		s.EndRound(ctx)
	}
}

// finishLocked transitions to Finished and forces all letters revealed.
// Caller holds the mutex.
func (s *GameService) finishLocked(winner string, points int) *model.RoundRecord {
	letters := []rune(s.state.Word)
	all := make([]int, len(letters))
	for i := range all {
		all[i] = i
	}

	s.state.Status = model.RoundFinished
	s.state.TimeLeft = 0
	s.state.Winner = winner
	s.state.WinnerPoints = points
	s.state.RevealedIndices = all

	return &model.RoundRecord{
		Word:      s.state.Word,
		Hint:      s.state.Hint,
		Winner:    winner,
		Points:    points,
		HadWinner: winner != "",
		StartedAt: time.UnixMilli(s.state.StartedAt),
		EndedAt:   time.Now(),
	}
}

func (s *GameService) archive(ctx context.Context, rec *model.RoundRecord) {
	if s.rounds == nil {
		return
	}
	if err := s.rounds.Create(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("failed to archive round")
	}
}

// pickWord selects a random entry, excluding the given word when at least
// one other entry exists.
func pickWord(entries []model.WordEntry, exclude string) model.WordEntry {
	exclude = strings.ToUpper(strings.TrimSpace(exclude))
	if exclude != "" {
		var candidates []model.WordEntry
		for _, e := range entries {
			if strings.ToUpper(e.Word) != exclude {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) > 0 {
			entries = candidates
		}
	}
	return entries[rand.IntN(len(entries))]
}
