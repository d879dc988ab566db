package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

type CheckinRepository interface {
	Get(goalID, dateKey string) (*model.DailyCheckin, error)
	MarkDone(goalID, userID, dateKey string) error
	DoneSince(goalID, fromKey string) ([]*model.DailyCheckin, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Get(goalID, dateKey string) (*model.DailyCheckin, error) {
	checkin := &model.DailyCheckin{}
	query := `SELECT * FROM daily_checkins WHERE goal_id = $1 AND date_key = $2`

	err := r.db.Get(checkin, query, goalID, dateKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return checkin, nil
}

// MarkDone writes done=true for the day. The upsert never sets done back to
// false, so two racing toggles converge on the same row.
func (r *checkinRepository) MarkDone(goalID, userID, dateKey string) error {
	query := `INSERT INTO daily_checkins (goal_id, user_id, date_key, done, created_at)
	          VALUES ($1, $2, $3, TRUE, $4)
	          ON CONFLICT (goal_id, date_key) DO UPDATE SET done = TRUE`

	_, err := r.db.Exec(query, goalID, userID, dateKey, time.Now())
	return err
}

func (r *checkinRepository) DoneSince(goalID, fromKey string) ([]*model.DailyCheckin, error) {
	var checkins []*model.DailyCheckin
	query := `SELECT * FROM daily_checkins
	          WHERE goal_id = $1 AND date_key >= $2 AND done = TRUE
	          ORDER BY date_key ASC`

	err := r.db.Select(&checkins, query, goalID, fromKey)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}
