package model

import (
	"time"
)

const (
	GoalCategoryMood   = "mood"
	GoalCategoryHabit  = "habit"
	GoalCategoryCustom = "custom"
)

const (
	MetricAvgMood   = "avg_mood"
	MetricFrequency = "frequency"
)

const (
	ComparisonAtLeast = "at_least"
	ComparisonAtMost  = "at_most"
)

// Goal is a weekly custom goal. Filters are category-specific: FilterEmojis
// applies only to mood goals, FilterCategories only to habit goals.
type Goal struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	Title            string     `db:"title" json:"title"`
	Category         string     `db:"category" json:"category"`
	MetricType       string     `db:"metric_type" json:"metricType"`
	Comparison       string     `db:"comparison" json:"comparison"`
	TargetValue      float64    `db:"target_value" json:"targetValue"`
	FilterEmojis     StringList `db:"filter_emojis" json:"filterEmojis"`
	FilterCategories StringList `db:"filter_categories" json:"filterCategories"`
	MeasurementLabel string     `db:"measurement_label" json:"measurementLabel"`
	IsActive         bool       `db:"is_active" json:"isActive"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
	ArchivedAt       *time.Time `db:"archived_at" json:"archivedAt"`
}
