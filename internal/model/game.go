package model

import "time"

// RoundStatus is the lifecycle state of a single round.
type RoundStatus string

const (
	RoundIdle     RoundStatus = "IDLE"
	RoundRunning  RoundStatus = "RUNNING"
	RoundPaused   RoundStatus = "PAUSED"
	RoundFinished RoundStatus = "FINISHED"
)

// GameState holds all round-scoped state. It is owned by the game service
// and mutated only through its serialized transition methods.
type GameState struct {
	Word              string      `json:"word"`
	Hint              string      `json:"hint"`
	RevealedIndices   []int       `json:"revealedIndices"`
	Status            RoundStatus `json:"status"`
	StartedAt         int64       `json:"startedAt"` // epoch millis
	Duration          int         `json:"duration"`  // seconds
	TimeLeft          int         `json:"timeLeft"`  // seconds
	DoublePointsUntil int64       `json:"doublePointsUntil"` // epoch millis, 0 when never activated
	Winner            string      `json:"winner,omitempty"`
	WinnerPoints      int         `json:"winnerPoints"`
}

// DoublePointsActive reports whether the double-points window covers now.
func (s GameState) DoublePointsActive(now time.Time) bool {
	return s.DoublePointsUntil > now.UnixMilli()
}

// GameConfig carries the tunable round parameters, all in seconds.
type GameConfig struct {
	RoundDuration        int `json:"roundDuration"`
	RevealInterval       int `json:"revealInterval"`
	DoublePointsDuration int `json:"doublePointsDuration"`
}

// Player is a cumulative score entry on the ranking board.
type Player struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// RoundRecord is the archived outcome of a finished round.
type RoundRecord struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Word      string    `json:"word" bson:"word"`
	Hint      string    `json:"hint" bson:"hint"`
	Winner    string    `json:"winner,omitempty" bson:"winner,omitempty"`
	Points    int       `json:"points" bson:"points"`
	HadWinner bool      `json:"hadWinner" bson:"hadWinner"`
	StartedAt time.Time `json:"startedAt" bson:"startedAt"`
	EndedAt   time.Time `json:"endedAt" bson:"endedAt"`
}
