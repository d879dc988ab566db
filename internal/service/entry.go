package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serenoapp/sereno/internal/model"
	"github.com/serenoapp/sereno/internal/repository"
)

// EntryService is a thin writer for the raw activity records. The records are
// owned by the UI collaborators; the progress engine treats them as read-only
// input, so there is no update or delete surface here.
type EntryService struct {
	entries repository.EntryRepository
	goals   repository.GoalRepository
}

func NewEntryService(entries repository.EntryRepository, goals repository.GoalRepository) *EntryService {
	return &EntryService{
		entries: entries,
		goals:   goals,
	}
}

func (s *EntryService) LogMood(userID string, valence, energy float64, emojis []string, note string) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Valence:   valence,
		Energy:    energy,
		Emojis:    emojis,
		Note:      note,
		CreatedAt: time.Now(),
	}

	err := s.entries.CreateMood(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log mood: %w", err)
	}

	return entry, nil
}

func (s *EntryService) LogHabit(userID string, tags []string, note string) (*model.HabitEntry, error) {
	entry := &model.HabitEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Tags:      tags,
		Note:      note,
		CreatedAt: time.Now(),
	}

	err := s.entries.CreateHabit(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log habit: %w", err)
	}

	return entry, nil
}

func (s *EntryService) LogActivity(userID, goalID string, value float64, note string) (*model.ActivityLog, error) {
	// Verify ownership before attaching the log to the goal
	_, err := s.goals.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if value == 0 {
		value = 1
	}

	log := &model.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		GoalID:    goalID,
		Value:     value,
		Note:      note,
		CreatedAt: time.Now(),
	}

	err = s.entries.CreateActivity(log)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	return log, nil
}

func (s *EntryService) MoodsInRange(userID string, from, to time.Time) ([]*model.MoodEntry, error) {
	return s.entries.MoodsInRange(userID, from, to)
}

func (s *EntryService) HabitsInRange(userID string, from, to time.Time) ([]*model.HabitEntry, error) {
	return s.entries.HabitsInRange(userID, from, to)
}

func (s *EntryService) ActivitiesInRange(userID string, from, to time.Time) ([]*model.ActivityLog, error) {
	return s.entries.ActivitiesInRange(userID, from, to)
}
