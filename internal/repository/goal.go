package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	ActiveGoals(userID string) ([]*model.Goal, error)
	CountActive(userID string) (int, error)
	Update(goal *model.Goal) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, category, metric_type, comparison, target_value,
	                             filter_emojis, filter_categories, measurement_label, is_active,
	                             created_at, updated_at, archived_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Category,
		goal.MetricType,
		goal.Comparison,
		goal.TargetValue,
		goal.FilterEmojis,
		goal.FilterCategories,
		goal.MeasurementLabel,
		goal.IsActive,
		goal.CreatedAt,
		goal.UpdatedAt,
		goal.ArchivedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY is_active DESC, updated_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ActiveGoals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountActive(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND is_active = TRUE`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, target_value = $2, filter_emojis = $3, filter_categories = $4,
	              measurement_label = $5, is_active = $6, archived_at = $7, updated_at = $8
	          WHERE id = $9 AND user_id = $10`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.TargetValue,
		goal.FilterEmojis,
		goal.FilterCategories,
		goal.MeasurementLabel,
		goal.IsActive,
		goal.ArchivedAt,
		time.Now(),
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
