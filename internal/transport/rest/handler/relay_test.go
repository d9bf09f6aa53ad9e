package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"wordguess/internal/service"
	"wordguess/internal/store"
)

func newRelayHandler(t *testing.T) *RelayHandler {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(st.Close)
	return NewRelayHandler(service.NewRelayService(st, zerolog.Nop()))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestSubmitGuess_OK(t *testing.T) {
	h := newRelayHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/guess?user=Ana&word=perro", nil)
	rec := httptest.NewRecorder()
	h.SubmitGuess(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["message"] != "Guess received" {
		t.Fatalf("unexpected body: %v", body)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data object: %v", body)
	}
	if data["word"] != "PERRO" || data["user"] != "Ana" {
		t.Fatalf("record not normalized: %v", data)
	}
	if id, _ := data["id"].(string); !strings.HasPrefix(id, store.GuessPrefix) {
		t.Fatalf("unexpected id %v", data["id"])
	}
}

func TestSubmitGuess_MissingParameters(t *testing.T) {
	h := newRelayHandler(t)

	for _, url := range []string{"/guess", "/guess?user=Ana", "/guess?word=perro"} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		h.SubmitGuess(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", url, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "Missing parameters" {
			t.Fatalf("%s: unexpected error body: %v", url, body)
		}
		required, _ := body["required"].([]interface{})
		if len(required) != 2 {
			t.Fatalf("%s: expected required parameter list, got %v", url, body["required"])
		}
	}
}

func TestSubmitEvent_InvalidKind(t *testing.T) {
	h := newRelayHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/event?user=Bot&event=launch_missiles", nil)
	rec := httptest.NewRecorder()
	h.SubmitEvent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Invalid event" {
		t.Fatalf("unexpected error body: %v", body)
	}
	valid, _ := body["valid"].([]interface{})
	if len(valid) != 3 {
		t.Fatalf("expected the three valid kinds, got %v", body["valid"])
	}
}

func TestSubmitEvent_WithDuration(t *testing.T) {
	h := newRelayHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/event?user=Bot&event=double_points&duration=45", nil)
	rec := httptest.NewRecorder()
	h.SubmitEvent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]interface{})
	if data["duration"] != float64(45) {
		t.Fatalf("duration not preserved: %v", data)
	}
}

func TestSubmitEvent_BadDurationIgnored(t *testing.T) {
	h := newRelayHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/event?user=Bot&event=double_points&duration=soon", nil)
	rec := httptest.NewRecorder()
	h.SubmitEvent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unparseable duration must not reject the event, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]interface{})
	if _, present := data["duration"]; present && data["duration"] != nil {
		t.Fatalf("bad duration must be dropped, got %v", data["duration"])
	}
}

func TestPending_RoundTrip(t *testing.T) {
	h := newRelayHandler(t)

	// Empty store: 200 with empty lists, never null.
	rec := httptest.NewRecorder()
	h.Pending(rec, httptest.NewRequest(http.MethodGet, "/pending", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	raw := rec.Body.String()
	if strings.Contains(raw, "null") {
		t.Fatalf("empty snapshot serialized with null lists: %s", raw)
	}

	submit := httptest.NewRecorder()
	h.SubmitGuess(submit, httptest.NewRequest(http.MethodGet, "/guess?user=Ana&word=perro", nil))

	rec = httptest.NewRecorder()
	h.Pending(rec, httptest.NewRequest(http.MethodGet, "/pending", nil))
	body := decodeBody(t, rec)
	guesses, _ := body["guesses"].([]interface{})
	if len(guesses) != 1 {
		t.Fatalf("expected 1 pending guess, got %v", body)
	}
}

func TestMarkProcessed(t *testing.T) {
	h := newRelayHandler(t)

	submit := httptest.NewRecorder()
	h.SubmitGuess(submit, httptest.NewRequest(http.MethodGet, "/guess?user=Ana&word=perro", nil))
	data := decodeBody(t, submit)["data"].(map[string]interface{})
	id := data["id"].(string)

	ack := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/mark-processed", strings.NewReader(body))
		h.MarkProcessed(rec, req)
		return rec
	}

	rec := ack(`{"key":"` + id + `"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Same key again, and an unknown key: both idempotent successes.
	if rec := ack(`{"key":"` + id + `"}`); rec.Code != http.StatusOK {
		t.Fatalf("repeat ack: expected 200, got %d", rec.Code)
	}
	if rec := ack(`{"key":"guess-ghost"}`); rec.Code != http.StatusOK {
		t.Fatalf("unknown key ack: expected 200, got %d", rec.Code)
	}

	if rec := ack(`{broken`); rec.Code != http.StatusInternalServerError {
		t.Fatalf("malformed body: expected 500, got %d", rec.Code)
	}

	pending := httptest.NewRecorder()
	h.Pending(pending, httptest.NewRequest(http.MethodGet, "/pending", nil))
	body := decodeBody(t, pending)
	if guesses, _ := body["guesses"].([]interface{}); len(guesses) != 0 {
		t.Fatalf("acknowledged guess still pending: %v", body)
	}
}
