package model

import (
	"encoding/json"
	"testing"
)

func TestEventKind_Valid(t *testing.T) {
	for _, k := range ValidEventKinds() {
		if !EventKind(k).Valid() {
			t.Fatalf("kind %q rejected", k)
		}
	}
	for _, k := range []string{"", "launch_missiles", "REVEAL_LETTER", "nueva ronda"} {
		if EventKind(k).Valid() {
			t.Fatalf("kind %q accepted", k)
		}
	}
}

func TestEmptySnapshot_JSONShape(t *testing.T) {
	data, err := json.Marshal(EmptySnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"guesses":[],"events":[]}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestActionRecord_OmitsNilDuration(t *testing.T) {
	rec := ActionRecord{ID: "event-1", User: "Bot", Event: EventRevealLetter}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := decoded["duration"]; present {
		t.Fatalf("nil duration must be omitted: %s", data)
	}
}
