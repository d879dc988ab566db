package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// GoalSummary is the denormalized copy of a snapshot's key fields embedded
// in the weekly report for UI consumption.
type GoalSummary struct {
	GoalID           string  `json:"goalId"`
	Title            string  `json:"title"`
	Category         string  `json:"category"`
	MeasurementLabel string  `json:"measurementLabel"`
	ActualValue      float64 `json:"actualValue"`
	TargetValue      float64 `json:"targetValue"`
	Comparison       string  `json:"comparison"`
	Met              bool    `json:"met"`
	Delta            float64 `json:"delta"`
	ProgressPercent  float64 `json:"progressPercent"`
	StreakAfterWeek  int     `json:"streakAfterWeek"`
	CoverageCount    int     `json:"coverageCount"`
}

// GoalSummaryList stores the per-goal summaries as a JSON array column.
type GoalSummaryList []GoalSummary

func (l GoalSummaryList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *GoalSummaryList) Scan(src any) error {
	return scanJSON(src, l)
}

// TagCount is one bucket of a habit-tag histogram.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCountList stores a histogram as a JSON array column, preserving its
// descending-count order.
type TagCountList []TagCount

func (l TagCountList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TagCountList) Scan(src any) error {
	return scanJSON(src, l)
}

// WeeklyReport is the per-user aggregate for one ISO week, keyed by
// (user_id, week_key). Created once per week; regeneration requires force.
type WeeklyReport struct {
	UserID         string          `db:"user_id" json:"userId"`
	WeekKey        string          `db:"week_key" json:"weekKey"`
	WeekStart      time.Time       `db:"week_start" json:"weekStart"`
	WeekEnd        time.Time       `db:"week_end" json:"weekEnd"`
	GoalSummaries  GoalSummaryList `db:"goal_summaries" json:"goalSummaries"`
	MoodCount      int             `db:"mood_count" json:"moodCount"`
	MoodAvgValence float64         `db:"mood_avg_valence" json:"moodAvgValence"`
	MoodAvgEnergy  float64         `db:"mood_avg_energy" json:"moodAvgEnergy"`
	HabitCount     int             `db:"habit_count" json:"habitCount"`
	HabitHistogram TagCountList    `db:"habit_histogram" json:"habitHistogram"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}
