package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serenoapp/sereno/internal/model"
	"github.com/serenoapp/sereno/internal/repository"
)

var (
	ErrActiveGoalLimit   = errors.New("active goal limit reached")
	ErrGoalNotActive     = errors.New("goal is not active")
	ErrGoalAlreadyActive = errors.New("goal is already active")
)

// GoalService manages weekly custom goals. The active-goal cap is enforced
// here, at create/activate time, never by the evaluator.
type GoalService struct {
	repo      repository.GoalRepository
	snapshots repository.SnapshotRepository
	maxActive int
}

func NewGoalService(repo repository.GoalRepository, snapshots repository.SnapshotRepository, maxActive int) *GoalService {
	return &GoalService{
		repo:      repo,
		snapshots: snapshots,
		maxActive: maxActive,
	}
}

type GoalInput struct {
	Title            string
	Category         string
	MetricType       string
	Comparison       string
	TargetValue      float64
	FilterEmojis     []string
	FilterCategories []string
	MeasurementLabel string
}

func (s *GoalService) Create(userID string, in GoalInput) (*model.Goal, error) {
	count, err := s.repo.CountActive(userID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxActive {
		return nil, ErrActiveGoalLimit
	}

	now := time.Now()
	goal := &model.Goal{
		ID:               uuid.New().String(),
		UserID:           userID,
		Title:            in.Title,
		Category:         in.Category,
		MetricType:       in.MetricType,
		Comparison:       in.Comparison,
		TargetValue:      in.TargetValue,
		FilterEmojis:     in.FilterEmojis,
		FilterCategories: in.FilterCategories,
		MeasurementLabel: in.MeasurementLabel,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) Activate(userID, goalID string) error {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}
	if goal.IsActive {
		return ErrGoalAlreadyActive
	}

	count, err := s.repo.CountActive(userID)
	if err != nil {
		return err
	}
	if count >= s.maxActive {
		return ErrActiveGoalLimit
	}

	goal.IsActive = true
	goal.ArchivedAt = nil
	goal.UpdatedAt = time.Now()
	return s.repo.Update(goal)
}

func (s *GoalService) Archive(userID, goalID string) error {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}
	if !goal.IsActive {
		return ErrGoalNotActive
	}

	now := time.Now()
	goal.IsActive = false
	goal.ArchivedAt = &now
	goal.UpdatedAt = now
	return s.repo.Update(goal)
}

// Snapshots returns the goal's evaluation history, newest week first.
func (s *GoalService) Snapshots(userID, goalID string) ([]*model.GoalSnapshot, error) {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.snapshots.ByGoal(goalID)
}
