package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"wordguess/internal/cache"
	"wordguess/internal/model"
	"wordguess/internal/service"
)

type stubWordRepo struct{ entries []model.WordEntry }

func (s *stubWordRepo) Upsert(ctx context.Context, entry *model.WordEntry) error { return nil }
func (s *stubWordRepo) List(ctx context.Context) ([]model.WordEntry, error)      { return s.entries, nil }
func (s *stubWordRepo) Delete(ctx context.Context, word string) error            { return nil }
func (s *stubWordRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.entries)), nil
}

type stubRoundRepo struct{ rounds []model.RoundRecord }

func (s *stubRoundRepo) Create(ctx context.Context, round *model.RoundRecord) error {
	s.rounds = append(s.rounds, *round)
	return nil
}

func (s *stubRoundRepo) Recent(ctx context.Context, limit int) ([]model.RoundRecord, error) {
	return s.rounds, nil
}

func newGameHandler(t *testing.T, words *stubWordRepo) *GameHandler {
	t.Helper()
	rounds := &stubRoundRepo{}
	lb := cache.NewMemoryLeaderboard()
	cfg := model.GameConfig{RoundDuration: 180, RevealInterval: 15, DoublePointsDuration: 30}
	gameSvc := service.NewGameService(words, rounds, lb, cfg, zerolog.Nop())
	applySvc := service.NewApplyService(gameSvc, zerolog.Nop())
	return NewGameHandler(gameSvc, applySvc, lb, words, rounds)
}

func TestDebug_ReportsWordCount(t *testing.T) {
	words := &stubWordRepo{entries: []model.WordEntry{
		{Word: "GATO", Hint: "Animal"},
		{Word: "PERRO", Hint: "Animal"},
	}}
	h := newGameHandler(t, words)

	rec := httptest.NewRecorder()
	h.Debug(rec, httptest.NewRequest(http.MethodGet, "/v1/debug", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["wordCount"] != float64(2) {
		t.Fatalf("expected wordCount 2, got %v", body["wordCount"])
	}
	if _, ok := body["engine"].(map[string]interface{}); !ok {
		t.Fatalf("missing engine counters: %v", body)
	}
	if _, ok := body["state"].(map[string]interface{}); !ok {
		t.Fatalf("missing state: %v", body)
	}
}

func TestStartRound_EmptyWordList(t *testing.T) {
	h := newGameHandler(t, &stubWordRepo{})

	rec := httptest.NewRecorder()
	h.StartRound(rec, httptest.NewRequest(http.MethodPost, "/v1/rounds/start", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty word list, got %d", rec.Code)
	}
}
