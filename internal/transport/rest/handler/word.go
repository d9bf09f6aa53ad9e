package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wordguess/internal/model"
	"wordguess/internal/repository"
)

// WordHandler handles word list management endpoints
type WordHandler struct {
	words repository.WordRepo
}

// NewWordHandler creates a new word handler
func NewWordHandler(words repository.WordRepo) *WordHandler {
	return &WordHandler{words: words}
}

// List handles GET /v1/words
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.words.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.WordEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"words": entries})
}

// Create handles POST /v1/words
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry model.WordEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(entry.Word) == "" || strings.TrimSpace(entry.Hint) == "" {
		writeError(w, http.StatusBadRequest, "word and hint are required")
		return
	}

	if err := h.words.Upsert(r.Context(), &entry); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Delete handles DELETE /v1/words/{word}
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if err := h.words.Delete(r.Context(), word); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
