package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serenoapp/sereno/internal/model"
	"github.com/serenoapp/sereno/internal/progress"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/week"
)

// ToggleResult reports whether today's check-in already existed. When it did,
// nothing was written and no recompute ran.
type ToggleResult struct {
	AlreadyDone bool
	DateKey     string
}

// DailyGoalService is the check-in streak engine. Streak state is always
// re-derived from the full check-in window, never incremented, so a crash
// between the check-in write and the stats write self-heals on the next run.
type DailyGoalService struct {
	repo     repository.DailyGoalRepository
	checkins repository.CheckinRepository
	calc     *week.Calculator

	windowWeeks      int
	successThreshold float64

	now func() time.Time
}

func NewDailyGoalService(
	repo repository.DailyGoalRepository,
	checkins repository.CheckinRepository,
	calc *week.Calculator,
	windowWeeks int,
	successThreshold float64,
) *DailyGoalService {
	return &DailyGoalService{
		repo:             repo,
		checkins:         checkins,
		calc:             calc,
		windowWeeks:      windowWeeks,
		successThreshold: successThreshold,
		now:              time.Now,
	}
}

func (s *DailyGoalService) Create(userID, title, category string) (*model.DailyGoal, error) {
	now := s.now()
	goal := &model.DailyGoal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Category:  category,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily goal: %w", err)
	}

	return goal, nil
}

func (s *DailyGoalService) ByID(userID, goalID string) (*model.DailyGoal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *DailyGoalService) DailyGoals(userID string) ([]*model.DailyGoal, error) {
	return s.repo.DailyGoals(userID)
}

// ToggleToday marks today done for the goal. Done is write-once: a second
// toggle the same day returns AlreadyDone without writing or recomputing.
func (s *DailyGoalService) ToggleToday(userID, goalID string) (*ToggleResult, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	today := s.calc.DateKey(s.now())

	existing, err := s.checkins.Get(goalID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Done {
		return &ToggleResult{AlreadyDone: true, DateKey: today}, nil
	}

	err = s.checkins.MarkDone(goalID, userID, today)
	if err != nil {
		return nil, err
	}

	err = s.Recompute(goal)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{AlreadyDone: false, DateKey: today}, nil
}

// Recompute derives the goal's streak state from the most recent window of
// check-ins and persists it. Pure function of history; safe to re-run.
func (s *DailyGoalService) Recompute(goal *model.DailyGoal) error {
	windows := s.calc.WeeksBack(s.now(), s.windowWeeks)
	oldest := windows[len(windows)-1]

	checkins, err := s.checkins.DoneSince(goal.ID, oldest.Start.Format("2006-01-02"))
	if err != nil {
		return err
	}

	successes := make([]bool, len(windows))
	for i, w := range windows {
		c := progress.WeeklyCompletion(checkins, w.Start)
		successes[i] = c.CompletionRatio >= s.successThreshold
	}

	current, best := progress.StreakStats(successes)

	var lastCompleted *string
	for _, c := range checkins {
		if c.Done && (lastCompleted == nil || c.DateKey > *lastCompleted) {
			key := c.DateKey
			lastCompleted = &key
		}
	}

	return s.repo.UpdateStats(goal.ID, windows[0].Start, current, best, lastCompleted)
}

// WeekStatus returns the current week's completion for the goal.
func (s *DailyGoalService) WeekStatus(userID, goalID string) (*progress.Completion, error) {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	win := s.calc.WindowFor(s.now())
	checkins, err := s.checkins.DoneSince(goalID, win.Start.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	c := progress.WeeklyCompletion(checkins, win.Start)
	return &c, nil
}

// CurrentWeekKey returns the Monday-date key of the week containing today.
func (s *DailyGoalService) CurrentWeekKey() week.MondayKey {
	return s.calc.MondayKeyFor(s.now())
}

// TodayDone reports whether the goal already has a done check-in today.
func (s *DailyGoalService) TodayDone(userID, goalID string) (bool, error) {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return false, err
	}

	checkin, err := s.checkins.Get(goalID, s.calc.DateKey(s.now()))
	if err != nil {
		return false, err
	}

	return checkin != nil && checkin.Done, nil
}
