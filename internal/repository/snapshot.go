package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

type SnapshotRepository interface {
	LatestBefore(goalID string, weekStart time.Time) (*model.GoalSnapshot, error)
	ByGoal(goalID string) ([]*model.GoalSnapshot, error)
}

type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// LatestBefore returns the snapshot with the greatest week_start strictly
// before the given week, or nil when the goal has no prior snapshot.
func (r *snapshotRepository) LatestBefore(goalID string, weekStart time.Time) (*model.GoalSnapshot, error) {
	snapshot := &model.GoalSnapshot{}
	query := `SELECT * FROM goal_snapshots
	          WHERE goal_id = $1 AND week_start < $2
	          ORDER BY week_start DESC
	          LIMIT 1`

	err := r.db.Get(snapshot, query, goalID, weekStart)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *snapshotRepository) ByGoal(goalID string) ([]*model.GoalSnapshot, error) {
	var snapshots []*model.GoalSnapshot
	query := `SELECT * FROM goal_snapshots WHERE goal_id = $1 ORDER BY week_start DESC`

	err := r.db.Select(&snapshots, query, goalID)
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
