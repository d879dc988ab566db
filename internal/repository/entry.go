package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/model"
)

// EntryRepository covers the raw activity records (mood, habit, free-form
// activity). They are owned by the UI collaborators that create them; the
// progress engine only ever reads them by time range.
type EntryRepository interface {
	CreateMood(entry *model.MoodEntry) error
	CreateHabit(entry *model.HabitEntry) error
	CreateActivity(log *model.ActivityLog) error
	MoodsInRange(userID string, from, to time.Time) ([]*model.MoodEntry, error)
	HabitsInRange(userID string, from, to time.Time) ([]*model.HabitEntry, error)
	ActivitiesInRange(userID string, from, to time.Time) ([]*model.ActivityLog, error)
}

type entryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) CreateMood(entry *model.MoodEntry) error {
	query := `INSERT INTO mood_entries (id, user_id, valence, energy, emojis, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Valence,
		entry.Energy,
		entry.Emojis,
		entry.Note,
		entry.CreatedAt,
	)

	return err
}

func (r *entryRepository) CreateHabit(entry *model.HabitEntry) error {
	query := `INSERT INTO habit_entries (id, user_id, tags, note, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Tags,
		entry.Note,
		entry.CreatedAt,
	)

	return err
}

func (r *entryRepository) CreateActivity(log *model.ActivityLog) error {
	query := `INSERT INTO activity_logs (id, user_id, goal_id, value, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		log.ID,
		log.UserID,
		log.GoalID,
		log.Value,
		log.Note,
		log.CreatedAt,
	)

	return err
}

func (r *entryRepository) MoodsInRange(userID string, from, to time.Time) ([]*model.MoodEntry, error) {
	var entries []*model.MoodEntry
	query := `SELECT * FROM mood_entries
	          WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
	          ORDER BY created_at ASC`

	err := r.db.Select(&entries, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *entryRepository) HabitsInRange(userID string, from, to time.Time) ([]*model.HabitEntry, error) {
	var entries []*model.HabitEntry
	query := `SELECT * FROM habit_entries
	          WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
	          ORDER BY created_at ASC`

	err := r.db.Select(&entries, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *entryRepository) ActivitiesInRange(userID string, from, to time.Time) ([]*model.ActivityLog, error) {
	var logs []*model.ActivityLog
	query := `SELECT * FROM activity_logs
	          WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
	          ORDER BY created_at ASC`

	err := r.db.Select(&logs, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
