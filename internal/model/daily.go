package model

import (
	"time"
)

// DailyGoal is a simple yes/no daily habit. The streak fields are derived
// state, recomputed wholesale from checkin history after every check-in;
// WeekStart is the Monday of the most recently evaluated week.
type DailyGoal struct {
	ID                 string     `db:"id" json:"id"`
	UserID             string     `db:"user_id" json:"userId"`
	Title              string     `db:"title" json:"title"`
	Category           string     `db:"category" json:"category"`
	IsActive           bool       `db:"is_active" json:"isActive"`
	WeekStart          *time.Time `db:"week_start" json:"weekStart"`
	CurrentStreakWeeks int        `db:"current_streak_weeks" json:"currentStreakWeeks"`
	BestStreakWeeks    int        `db:"best_streak_weeks" json:"bestStreakWeeks"`
	LastCompletedDate  *string    `db:"last_completed_date" json:"lastCompletedDate"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// DailyCheckin is the append-only ground truth for daily goals, keyed by
// (goal_id, date_key). Done is write-once: it never reverts to false.
type DailyCheckin struct {
	GoalID    string    `db:"goal_id" json:"goalId"`
	UserID    string    `db:"user_id" json:"userId"`
	DateKey   string    `db:"date_key" json:"dateKey"`
	Done      bool      `db:"done" json:"done"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
