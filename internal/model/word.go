package model

import "time"

// WordEntry is one entry of the configured word list. Word is stored
// uppercase and trimmed; Word is unique within the list.
type WordEntry struct {
	Word       string    `json:"word" bson:"word"`
	Hint       string    `json:"hint" bson:"hint"`
	Difficulty string    `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Category   string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
