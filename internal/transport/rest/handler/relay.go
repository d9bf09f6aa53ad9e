package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wordguess/internal/model"
	"wordguess/internal/service"
)

// RelayHandler handles the external-trigger relay endpoints. These are the
// only unauthenticated write endpoints; third-party tools hit them with
// plain GET or POST requests.
type RelayHandler struct {
	relaySvc *service.RelayService
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(relaySvc *service.RelayService) *RelayHandler {
	return &RelayHandler{relaySvc: relaySvc}
}

// SubmitGuess handles GET/POST /guess?user=&word=
func (h *RelayHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user := q.Get("user")
	word := q.Get("word")

	if user == "" || word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "Missing parameters",
			"required": []string{"user", "word"},
		})
		return
	}

	rec, err := h.relaySvc.SubmitGuess(r.Context(), user, word)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Guess received",
		"data":    rec,
	})
}

// SubmitEvent handles GET/POST /event?user=&event=&duration=
func (h *RelayHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user := q.Get("user")
	event := q.Get("event")

	if user == "" || event == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "Missing parameters",
			"required": []string{"user", "event"},
		})
		return
	}

	var duration *int
	if raw := q.Get("duration"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			duration = &n
		}
	}

	rec, err := h.relaySvc.SubmitAction(r.Context(), user, event, duration)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Event received",
		"data":    rec,
	})
}

// Pending handles GET /pending. Always 200: a backend outage degrades to an
// empty snapshot so the poller never sees a hard failure.
func (h *RelayHandler) Pending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.relaySvc.Pending(r.Context()))
}

// MarkProcessedRequest is the request body for acknowledgments
type MarkProcessedRequest struct {
	Key string `json:"key"`
}

// MarkProcessed handles POST /mark-processed. Idempotent: unknown or missing
// keys still succeed.
func (h *RelayHandler) MarkProcessed(w http.ResponseWriter, r *http.Request) {
	var req MarkProcessedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := h.relaySvc.Acknowledge(r.Context(), req.Key); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *RelayHandler) writeSubmitError(w http.ResponseWriter, err error) {
	switch err {
	case service.ErrInvalidEvent:
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid event",
			"valid": model.ValidEventKinds(),
		})
	case service.ErrMissingUser, service.ErrMissingWord:
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "Missing parameters",
			"required": []string{"user", "word"},
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
}
