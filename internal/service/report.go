package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/serenoapp/sereno/internal/model"
	"github.com/serenoapp/sereno/internal/progress"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/week"
)

var (
	ErrNoActiveGoals = errors.New("no active goals to evaluate")
)

// ReportResult is what a generation run returns to the caller. When Skipped
// is true a report for the week already existed and nothing was read or
// written.
type ReportResult struct {
	Skipped       bool
	WeekKey       week.ISOKey
	WeekStart     time.Time
	WeekEnd       time.Time
	GoalSummaries []model.GoalSummary
	MoodOverview  progress.MoodOverview
	HabitOverview progress.HabitOverview
}

// ReportService produces at most one weekly report per user per ISO week,
// plus one snapshot per active goal, in a single atomic commit. Re-running
// for the same week is an idempotent overwrite thanks to the deterministic
// (goalId, weekKey) and (userId, weekKey) keys.
type ReportService struct {
	goals     repository.GoalRepository
	entries   repository.EntryRepository
	snapshots repository.SnapshotRepository
	reports   repository.ReportRepository
	users     repository.UserRepository
	notify    *NotifyService
	calc      *week.Calculator

	// group deduplicates concurrent generations for the same user and week
	// within this process. Cross-device races stay possible; the idempotent
	// writes make them converge.
	group singleflight.Group
}

func NewReportService(
	goals repository.GoalRepository,
	entries repository.EntryRepository,
	snapshots repository.SnapshotRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	notify *NotifyService,
	calc *week.Calculator,
) *ReportService {
	return &ReportService{
		goals:     goals,
		entries:   entries,
		snapshots: snapshots,
		reports:   reports,
		users:     users,
		notify:    notify,
		calc:      calc,
	}
}

func (s *ReportService) Generate(ctx context.Context, userID string, ref time.Time, force bool) (*ReportResult, error) {
	win := s.calc.WindowFor(ref)
	key := s.calc.ISOKeyFor(ref)

	v, err, _ := s.group.Do(userID+"|"+string(key), func() (any, error) {
		return s.generate(ctx, userID, win, key, force)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ReportResult), nil
}

func (s *ReportService) generate(ctx context.Context, userID string, win week.Window, key week.ISOKey, force bool) (*ReportResult, error) {
	exists, err := s.reports.Exists(userID, string(key))
	if err != nil {
		return nil, err
	}
	if exists && !force {
		return &ReportResult{Skipped: true, WeekKey: key, WeekStart: win.Start, WeekEnd: win.End}, nil
	}

	goals, err := s.goals.ActiveGoals(userID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, ErrNoActiveGoals
	}

	// The three record types have no ordering dependency; fetch them
	// concurrently and wait for all before evaluating.
	var (
		moods      []*model.MoodEntry
		habits     []*model.HabitEntry
		activities []*model.ActivityLog
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moods, err = s.entries.MoodsInRange(userID, win.Start, win.End)
		return err
	})
	g.Go(func() error {
		var err error
		habits, err = s.entries.HabitsInRange(userID, win.Start, win.End)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = s.entries.ActivitiesInRange(userID, win.Start, win.End)
		return err
	})
	err = g.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch week records: %w", err)
	}

	activitiesByGoal := map[string][]*model.ActivityLog{}
	for _, a := range activities {
		activitiesByGoal[a.GoalID] = append(activitiesByGoal[a.GoalID], a)
	}

	now := time.Now()
	snapshots := make([]*model.GoalSnapshot, 0, len(goals))
	summaries := make([]model.GoalSummary, 0, len(goals))

	for _, goal := range goals {
		prev, err := s.snapshots.LatestBefore(goal.ID, win.Start)
		if err != nil {
			return nil, err
		}

		agg := progress.AggregateRecords(goal, progress.Records{
			Moods:      moods,
			Habits:     habits,
			Activities: activitiesByGoal[goal.ID],
		})
		eval := progress.Evaluate(goal, agg, prev)

		snapshots = append(snapshots, &model.GoalSnapshot{
			GoalID:          goal.ID,
			UserID:          userID,
			WeekKey:         string(key),
			WeekStart:       win.Start,
			WeekEnd:         win.End,
			ActualValue:     eval.ActualValue,
			TargetValue:     eval.TargetValue,
			Comparison:      eval.Comparison,
			Met:             eval.Met,
			Delta:           eval.Delta,
			CoverageCount:   eval.CoverageCount,
			StreakAfterWeek: eval.StreakAfterWeek,
			ProgressPercent: eval.ProgressPercent,
			Details:         eval.Details,
			CreatedAt:       now,
		})
		summaries = append(summaries, model.GoalSummary{
			GoalID:           goal.ID,
			Title:            goal.Title,
			Category:         goal.Category,
			MeasurementLabel: goal.MeasurementLabel,
			ActualValue:      eval.ActualValue,
			TargetValue:      eval.TargetValue,
			Comparison:       eval.Comparison,
			Met:              eval.Met,
			Delta:            eval.Delta,
			ProgressPercent:  eval.ProgressPercent,
			StreakAfterWeek:  eval.StreakAfterWeek,
			CoverageCount:    eval.CoverageCount,
		})
	}

	moodOverview := progress.SummarizeMoods(moods)
	habitOverview := progress.SummarizeHabits(habits)

	report := &model.WeeklyReport{
		UserID:         userID,
		WeekKey:        string(key),
		WeekStart:      win.Start,
		WeekEnd:        win.End,
		GoalSummaries:  summaries,
		MoodCount:      moodOverview.Count,
		MoodAvgValence: moodOverview.AvgValence,
		MoodAvgEnergy:  moodOverview.AvgEnergy,
		HabitCount:     habitOverview.Count,
		HabitHistogram: habitOverview.Histogram,
		CreatedAt:      now,
	}

	err = s.reports.SaveWeek(report, snapshots)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		WeekKey:       key,
		WeekStart:     win.Start,
		WeekEnd:       win.End,
		GoalSummaries: summaries,
		MoodOverview:  moodOverview,
		HabitOverview: habitOverview,
	}

	// Best effort: a failed summary notification never fails the report.
	s.sendSummary(ctx, userID, result)

	return result, nil
}

func (s *ReportService) sendSummary(ctx context.Context, userID string, result *ReportResult) {
	if s.notify == nil {
		return
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		slog.Error("weekly summary notification skipped", "error", err, "user_id", userID)
		return
	}

	err = s.notify.SendWeeklySummary(ctx, user.Email, result)
	if err != nil {
		slog.Error("weekly summary notification failed", "error", err, "user_id", userID, "week_key", result.WeekKey)
	}
}

// Report returns an existing weekly report for the week containing ref.
func (s *ReportService) Report(userID string, ref time.Time) (*model.WeeklyReport, error) {
	return s.reports.ByWeekKey(userID, string(s.calc.ISOKeyFor(ref)))
}

// ReportByKey returns an existing weekly report by its ISO week key.
func (s *ReportService) ReportByKey(userID, weekKey string) (*model.WeeklyReport, error) {
	return s.reports.ByWeekKey(userID, weekKey)
}

// Reports lists all of a user's weekly reports, newest first.
func (s *ReportService) Reports(userID string) ([]*model.WeeklyReport, error) {
	return s.reports.Reports(userID)
}
