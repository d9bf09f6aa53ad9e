package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordguess/internal/cache"
	"wordguess/internal/repository"
	"wordguess/internal/service"
)

// GameHandler handles round control and read endpoints
type GameHandler struct {
	gameSvc     *service.GameService
	applySvc    *service.ApplyService
	leaderboard cache.LeaderboardCache
	words       repository.WordRepo
	rounds      repository.RoundRepo
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService, applySvc *service.ApplyService, leaderboard cache.LeaderboardCache, words repository.WordRepo, rounds repository.RoundRepo) *GameHandler {
	return &GameHandler{
		gameSvc:     gameSvc,
		applySvc:    applySvc,
		leaderboard: leaderboard,
		words:       words,
		rounds:      rounds,
	}
}

// StartRoundRequest is the request body for starting a round. Empty word
// means "pick a random one from the word list".
type StartRoundRequest struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// StartRound handles POST /v1/rounds/start
func (h *GameHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	var req StartRoundRequest
	if r.Body != nil {
		// Body is optional; decode errors on an empty body are fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var err error
	if req.Word == "" {
		err = h.gameSvc.StartRandomRound(r.Context())
	} else {
		err = h.gameSvc.StartRound(req.Word, req.Hint)
	}
	if err != nil {
		if errors.Is(err, service.ErrEmptyWordList) {
			writeError(w, http.StatusConflict, "word list is empty, add words first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.gameSvc.State())
}

// EndRound handles POST /v1/rounds/end
func (h *GameHandler) EndRound(w http.ResponseWriter, r *http.Request) {
	h.gameSvc.EndRound(r.Context())
	writeJSON(w, http.StatusOK, h.gameSvc.State())
}

// TogglePause handles POST /v1/rounds/pause
func (h *GameHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	h.gameSvc.TogglePause()
	writeJSON(w, http.StatusOK, h.gameSvc.State())
}

// State handles GET /v1/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gameSvc.State())
}

// Leaderboard handles GET /leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	top := 20
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			top = n
		}
	}

	players, err := h.leaderboard.GetTop(r.Context(), top)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": players})
}

// ResetLeaderboard handles POST /v1/leaderboard/reset
func (h *GameHandler) ResetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if err := h.leaderboard.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Debug handles GET /v1/debug: engine counters, current state and recent
// round history for operator diagnosis.
func (h *GameHandler) Debug(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"engine": h.applySvc.Stats(),
		"state":  h.gameSvc.State(),
		"config": h.gameSvc.Config(),
	}

	if h.words != nil {
		if n, err := h.words.Count(r.Context()); err == nil {
			resp["wordCount"] = n
		}
	}

	if h.rounds != nil {
		if history, err := h.rounds.Recent(r.Context(), 10); err == nil {
			resp["recentRounds"] = history
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
