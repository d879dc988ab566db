package model

import (
	"time"
)

// MoodEntry is a raw mood log. Valence and energy come straight from the UI;
// the progress engine treats non-finite values as zero rather than rejecting them.
type MoodEntry struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"userId"`
	Valence   float64    `db:"valence" json:"valence"`
	Energy    float64    `db:"energy" json:"energy"`
	Emojis    StringList `db:"emojis" json:"emojis"`
	Note      string     `db:"note" json:"note"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// HabitEntry is a raw habit log tagged with free-form category strings.
type HabitEntry struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"userId"`
	Tags      StringList `db:"tags" json:"tags"`
	Note      string     `db:"note" json:"note"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// ActivityLog is a free-form activity logged against a custom goal.
// Value defaults to 1 when the UI logs a bare "I did it" event.
type ActivityLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	GoalID    string    `db:"goal_id" json:"goalId"`
	Value     float64   `db:"value" json:"value"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
