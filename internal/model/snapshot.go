package model

import (
	"time"
)

// GoalSnapshot is the per-goal, per-week evaluation result. It is keyed by
// (goal_id, week_key) so re-running the report generator overwrites rather
// than duplicates. Owned exclusively by the report generator.
type GoalSnapshot struct {
	GoalID          string    `db:"goal_id" json:"goalId"`
	UserID          string    `db:"user_id" json:"userId"`
	WeekKey         string    `db:"week_key" json:"weekKey"`
	WeekStart       time.Time `db:"week_start" json:"weekStart"`
	WeekEnd         time.Time `db:"week_end" json:"weekEnd"`
	ActualValue     float64   `db:"actual_value" json:"actualValue"`
	TargetValue     float64   `db:"target_value" json:"targetValue"`
	Comparison      string    `db:"comparison" json:"comparison"`
	Met             bool      `db:"met" json:"met"`
	Delta           float64   `db:"delta" json:"delta"`
	CoverageCount   int       `db:"coverage_count" json:"coverageCount"`
	StreakAfterWeek int       `db:"streak_after_week" json:"streakAfterWeek"`
	ProgressPercent float64   `db:"progress_percent" json:"progressPercent"`
	Details         JSONMap   `db:"details" json:"details"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}
