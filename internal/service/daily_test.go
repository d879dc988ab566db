package service

import (
	"testing"
	"time"

	"github.com/serenoapp/sereno/internal/repository"
)

func TestToggleTodayWriteOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1")

	goal, err := env.dailies.Create("user-1", "Meditate", "mindfulness")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, err := env.dailies.ToggleToday("user-1", goal.ID)
	if err != nil {
		t.Fatalf("first ToggleToday failed: %v", err)
	}
	if first.AlreadyDone {
		t.Error("first toggle reported AlreadyDone")
	}

	second, err := env.dailies.ToggleToday("user-1", goal.ID)
	if err != nil {
		t.Fatalf("second ToggleToday failed: %v", err)
	}
	if !second.AlreadyDone {
		t.Error("second toggle did not report AlreadyDone")
	}
	if second.DateKey != first.DateKey {
		t.Errorf("DateKey changed between toggles: %s vs %s", first.DateKey, second.DateKey)
	}

	if got := env.countRows(t, "daily_checkins"); got != 1 {
		t.Errorf("daily_checkins rows = %d, want 1", got)
	}

	done, err := env.dailies.TodayDone("user-1", goal.ID)
	if err != nil {
		t.Fatalf("TodayDone failed: %v", err)
	}
	if !done {
		t.Error("TodayDone = false after toggle")
	}

	_, err = env.dailies.ToggleToday("user-1", "missing")
	if err != repository.ErrDailyGoalNotFound {
		t.Errorf("ToggleToday(missing) error = %v, want ErrDailyGoalNotFound", err)
	}
}

func TestRecomputeStreaks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1")

	// Pin the clock to a Wednesday so the week layout is deterministic.
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.Local)
	env.dailies.now = func() time.Time { return now }

	goal, err := env.dailies.Create("user-1", "Meditate", "mindfulness")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Five done days in each of the three full weeks before the current one:
	// 5/7 = 0.714 clears the 0.6 threshold.
	for weeksAgo := 1; weeksAgo <= 3; weeksAgo++ {
		monday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local).AddDate(0, 0, -7*weeksAgo)
		for day := 0; day < 5; day++ {
			key := monday.AddDate(0, 0, day).Format("2006-01-02")
			err := env.checkins.MarkDone(goal.ID, "user-1", key)
			if err != nil {
				t.Fatalf("MarkDone(%s) failed: %v", key, err)
			}
		}
	}

	// Five done days in the current week as well.
	monday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)
	for day := 0; day < 5; day++ {
		key := monday.AddDate(0, 0, day).Format("2006-01-02")
		err := env.checkins.MarkDone(goal.ID, "user-1", key)
		if err != nil {
			t.Fatalf("MarkDone(%s) failed: %v", key, err)
		}
	}

	err = env.dailies.Recompute(goal)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}

	got, err := env.dailies.ByID("user-1", goal.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.CurrentStreakWeeks != 4 {
		t.Errorf("CurrentStreakWeeks = %d, want 4", got.CurrentStreakWeeks)
	}
	if got.BestStreakWeeks != 4 {
		t.Errorf("BestStreakWeeks = %d, want 4", got.BestStreakWeeks)
	}
	if got.LastCompletedDate == nil || *got.LastCompletedDate != "2026-02-13" {
		t.Errorf("LastCompletedDate = %v, want 2026-02-13", got.LastCompletedDate)
	}

	status, err := env.dailies.WeekStatus("user-1", goal.ID)
	if err != nil {
		t.Fatalf("WeekStatus failed: %v", err)
	}
	if status.CompletedDays != 5 {
		t.Errorf("CompletedDays = %d, want 5", status.CompletedDays)
	}
	if status.CompletionPercent != 71 {
		t.Errorf("CompletionPercent = %d, want 71", status.CompletionPercent)
	}
}

func TestRecomputeStreakBreak(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1")

	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.Local)
	env.dailies.now = func() time.Time { return now }

	goal, err := env.dailies.Create("user-1", "Meditate", "mindfulness")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A successful week two weeks ago, a failed week last week, and a bare
	// single check-in this week: current streak is broken, best survives.
	twoBack := time.Date(2026, 1, 26, 0, 0, 0, 0, time.Local)
	for day := 0; day < 7; day++ {
		key := twoBack.AddDate(0, 0, day).Format("2006-01-02")
		err := env.checkins.MarkDone(goal.ID, "user-1", key)
		if err != nil {
			t.Fatalf("MarkDone(%s) failed: %v", key, err)
		}
	}
	err = env.checkins.MarkDone(goal.ID, "user-1", "2026-02-03") // 1/7 last week
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	err = env.checkins.MarkDone(goal.ID, "user-1", "2026-02-09") // 1/7 this week
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	err = env.dailies.Recompute(goal)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}

	got, err := env.dailies.ByID("user-1", goal.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.CurrentStreakWeeks != 0 {
		t.Errorf("CurrentStreakWeeks = %d, want 0", got.CurrentStreakWeeks)
	}
	if got.BestStreakWeeks != 1 {
		t.Errorf("BestStreakWeeks = %d, want 1", got.BestStreakWeeks)
	}
}
