package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

var (
	ErrReportNotFound = errors.New("weekly report not found")
)

type ReportRepository interface {
	Exists(userID, weekKey string) (bool, error)
	ByWeekKey(userID, weekKey string) (*model.WeeklyReport, error)
	Reports(userID string) ([]*model.WeeklyReport, error)
	SaveWeek(report *model.WeeklyReport, snapshots []*model.GoalSnapshot) error
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Exists(userID, weekKey string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM weekly_reports WHERE user_id = $1 AND week_key = $2`
	err := r.db.QueryRow(query, userID, weekKey).Scan(&count)
	return count > 0, err
}

func (r *reportRepository) ByWeekKey(userID, weekKey string) (*model.WeeklyReport, error) {
	report := &model.WeeklyReport{}
	query := `SELECT * FROM weekly_reports WHERE user_id = $1 AND week_key = $2`

	err := r.db.Get(report, query, userID, weekKey)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}

	return report, err
}

func (r *reportRepository) Reports(userID string) ([]*model.WeeklyReport, error) {
	var reports []*model.WeeklyReport
	query := `SELECT * FROM weekly_reports WHERE user_id = $1 ORDER BY week_start DESC`

	err := r.db.Select(&reports, query, userID)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// SaveWeek persists one weekly report plus all of its per-goal snapshots in a
// single transaction. Snapshots and the report upsert on their deterministic
// keys, so a crashed or raced generation converges on the same final rows.
func (r *reportRepository) SaveWeek(report *model.WeeklyReport, snapshots []*model.GoalSnapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	snapshotQuery := `INSERT INTO goal_snapshots (goal_id, user_id, week_key, week_start, week_end,
	                      actual_value, target_value, comparison, met, delta, coverage_count,
	                      streak_after_week, progress_percent, details, created_at)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	                  ON CONFLICT (goal_id, week_key) DO UPDATE SET
	                      actual_value = excluded.actual_value,
	                      target_value = excluded.target_value,
	                      comparison = excluded.comparison,
	                      met = excluded.met,
	                      delta = excluded.delta,
	                      coverage_count = excluded.coverage_count,
	                      streak_after_week = excluded.streak_after_week,
	                      progress_percent = excluded.progress_percent,
	                      details = excluded.details`

	for _, s := range snapshots {
		_, err := tx.Exec(snapshotQuery,
			s.GoalID,
			s.UserID,
			s.WeekKey,
			s.WeekStart,
			s.WeekEnd,
			s.ActualValue,
			s.TargetValue,
			s.Comparison,
			s.Met,
			s.Delta,
			s.CoverageCount,
			s.StreakAfterWeek,
			s.ProgressPercent,
			s.Details,
			s.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save snapshot for goal %s: %w", s.GoalID, err)
		}
	}

	reportQuery := `INSERT INTO weekly_reports (user_id, week_key, week_start, week_end, goal_summaries,
	                    mood_count, mood_avg_valence, mood_avg_energy, habit_count, habit_histogram, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	                ON CONFLICT (user_id, week_key) DO UPDATE SET
	                    goal_summaries = excluded.goal_summaries,
	                    mood_count = excluded.mood_count,
	                    mood_avg_valence = excluded.mood_avg_valence,
	                    mood_avg_energy = excluded.mood_avg_energy,
	                    habit_count = excluded.habit_count,
	                    habit_histogram = excluded.habit_histogram`

	_, err = tx.Exec(reportQuery,
		report.UserID,
		report.WeekKey,
		report.WeekStart,
		report.WeekEnd,
		report.GoalSummaries,
		report.MoodCount,
		report.MoodAvgValence,
		report.MoodAvgEnergy,
		report.HabitCount,
		report.HabitHistogram,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save weekly report: %w", err)
	}

	return tx.Commit()
}
