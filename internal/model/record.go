package model

// EventKind identifies a named remote action. The set is closed: ingest
// rejects anything else before a record is created.
type EventKind string

const (
	EventRevealLetter EventKind = "reveal_letter"
	EventDoublePoints EventKind = "double_points"
	EventNewRound     EventKind = "nueva_ronda"
)

// ValidEventKinds returns the accepted event names, for error responses.
func ValidEventKinds() []string {
	return []string{
		string(EventRevealLetter),
		string(EventDoublePoints),
		string(EventNewRound),
	}
}

// Valid reports whether k is a member of the closed enumeration.
func (k EventKind) Valid() bool {
	switch k {
	case EventRevealLetter, EventDoublePoints, EventNewRound:
		return true
	}
	return false
}

// GuessRecord is a word submission queued in the event store.
type GuessRecord struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Word      string `json:"word"`
	Timestamp int64  `json:"timestamp"` // epoch millis, set at ingest
	Processed bool   `json:"processed"`
}

// ActionRecord is a named remote action queued in the event store.
// Duration is only meaningful for double_points (seconds).
type ActionRecord struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Event     EventKind `json:"event"`
	Duration  *int      `json:"duration,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Processed bool      `json:"processed"`
}

// PendingSnapshot is the pending reader's view: all unprocessed, unexpired
// records, partitioned by kind. Ordering is not guaranteed.
type PendingSnapshot struct {
	Guesses []GuessRecord  `json:"guesses"`
	Events  []ActionRecord `json:"events"`
}

// EmptySnapshot returns a snapshot with non-nil empty lists so it serializes
// as {"guesses":[],"events":[]}.
func EmptySnapshot() *PendingSnapshot {
	return &PendingSnapshot{
		Guesses: []GuessRecord{},
		Events:  []ActionRecord{},
	}
}
