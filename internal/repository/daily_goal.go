package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

var (
	ErrDailyGoalNotFound = errors.New("daily goal not found")
)

type DailyGoalRepository interface {
	Create(goal *model.DailyGoal) error
	ByID(userID, goalID string) (*model.DailyGoal, error)
	DailyGoals(userID string) ([]*model.DailyGoal, error)
	UpdateStats(goalID string, weekStart time.Time, currentStreak, bestStreak int, lastCompleted *string) error
}

type dailyGoalRepository struct {
	db *sqlx.DB
}

func NewDailyGoalRepository(db *sqlx.DB) DailyGoalRepository {
	return &dailyGoalRepository{db: db}
}

func (r *dailyGoalRepository) Create(goal *model.DailyGoal) error {
	query := `INSERT INTO daily_goals (id, user_id, title, category, is_active, week_start,
	                                   current_streak_weeks, best_streak_weeks, last_completed_date,
	                                   created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Category,
		goal.IsActive,
		goal.WeekStart,
		goal.CurrentStreakWeeks,
		goal.BestStreakWeeks,
		goal.LastCompletedDate,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *dailyGoalRepository) ByID(userID, goalID string) (*model.DailyGoal, error) {
	goal := &model.DailyGoal{}
	query := `SELECT * FROM daily_goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrDailyGoalNotFound
	}

	return goal, err
}

func (r *dailyGoalRepository) DailyGoals(userID string) ([]*model.DailyGoal, error) {
	var goals []*model.DailyGoal
	query := `SELECT * FROM daily_goals WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *dailyGoalRepository) UpdateStats(goalID string, weekStart time.Time, currentStreak, bestStreak int, lastCompleted *string) error {
	query := `UPDATE daily_goals
	          SET week_start = $1, current_streak_weeks = $2, best_streak_weeks = $3,
	              last_completed_date = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query, weekStart, currentStreak, bestStreak, lastCompleted, time.Now(), goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDailyGoalNotFound
	}

	return nil
}
