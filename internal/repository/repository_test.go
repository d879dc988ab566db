package repository

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/db"
	"github.com/serenoapp/sereno/internal/model"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory sqlite database with the full schema applied.
// A single connection keeps the in-memory database alive across queries.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return database
}

func seedUser(t *testing.T, database *sqlx.DB, id string) {
	t.Helper()
	users := NewUserRepository(database)
	err := users.Create(&model.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Test User",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func seedGoal(t *testing.T, database *sqlx.DB, id, userID string) *model.Goal {
	t.Helper()
	goals := NewGoalRepository(database)
	now := time.Now()
	goal := &model.Goal{
		ID:          id,
		UserID:      userID,
		Title:       "Move more",
		Category:    model.GoalCategoryHabit,
		MetricType:  model.MetricFrequency,
		Comparison:  model.ComparisonAtLeast,
		TargetValue: 5,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := goals.Create(goal)
	if err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	return goal
}

func seedDailyGoal(t *testing.T, database *sqlx.DB, id, userID string) {
	t.Helper()
	dailies := NewDailyGoalRepository(database)
	now := time.Now()
	err := dailies.Create(&model.DailyGoal{
		ID:        id,
		UserID:    userID,
		Title:     "Meditate",
		Category:  "mindfulness",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to seed daily goal: %v", err)
	}
}

func TestUserRepository(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	seedUser(t, database, "user-1")

	got, err := users.ByID("user-1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Email != "user-1@example.com" {
		t.Errorf("Email = %q, want user-1@example.com", got.Email)
	}

	_, err = users.ByID("missing")
	if err != ErrUserNotFound {
		t.Errorf("ByID(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestGoalRepository(t *testing.T) {
	database := newTestDB(t)
	goals := NewGoalRepository(database)

	seedUser(t, database, "user-1")
	goal := seedGoal(t, database, "goal-1", "user-1")
	seedGoal(t, database, "goal-2", "user-1")

	got, err := goals.ByID("user-1", "goal-1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Title != "Move more" || !got.IsActive {
		t.Errorf("unexpected goal: %+v", got)
	}

	// Ownership is part of the key: another user never sees the goal.
	_, err = goals.ByID("user-2", "goal-1")
	if err != ErrGoalNotFound {
		t.Errorf("ByID(wrong user) error = %v, want ErrGoalNotFound", err)
	}

	count, err := goals.CountActive("user-1")
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountActive = %d, want 2", count)
	}

	// Archive one and the active set shrinks.
	now := time.Now()
	goal.IsActive = false
	goal.ArchivedAt = &now
	err = goals.Update(goal)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	active, err := goals.ActiveGoals("user-1")
	if err != nil {
		t.Fatalf("ActiveGoals failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "goal-2" {
		t.Errorf("ActiveGoals = %v, want only goal-2", active)
	}

	// Updating someone else's goal touches no rows.
	goal.UserID = "user-2"
	err = goals.Update(goal)
	if err != ErrGoalNotFound {
		t.Errorf("Update(wrong user) error = %v, want ErrGoalNotFound", err)
	}
}

func TestGoalFiltersRoundTrip(t *testing.T) {
	database := newTestDB(t)
	goals := NewGoalRepository(database)

	seedUser(t, database, "user-1")
	now := time.Now()
	err := goals.Create(&model.Goal{
		ID:               "goal-1",
		UserID:           "user-1",
		Title:            "Calm mornings",
		Category:         model.GoalCategoryMood,
		MetricType:       model.MetricAvgMood,
		Comparison:       model.ComparisonAtLeast,
		TargetValue:      1.5,
		FilterEmojis:     model.StringList{"😊", "😌"},
		FilterCategories: nil,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := goals.ByID("user-1", "goal-1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if len(got.FilterEmojis) != 2 || got.FilterEmojis[0] != "😊" {
		t.Errorf("FilterEmojis = %v, want [😊 😌]", got.FilterEmojis)
	}
	if len(got.FilterCategories) != 0 {
		t.Errorf("FilterCategories = %v, want empty", got.FilterCategories)
	}
}

func TestSnapshotLatestBefore(t *testing.T) {
	database := newTestDB(t)
	snapshots := NewSnapshotRepository(database)
	reports := NewReportRepository(database)

	seedUser(t, database, "user-1")
	seedGoal(t, database, "goal-1", "user-1")

	week3 := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	// No history yet: nil, nil.
	got, err := snapshots.LatestBefore("goal-1", week3)
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if got != nil {
		t.Errorf("LatestBefore on empty history = %+v, want nil", got)
	}

	for i, weekKey := range []string{"2026-W05", "2026-W06", "2026-W07"} {
		start := week3.AddDate(0, 0, 7*(i-2))
		err := reports.SaveWeek(
			&model.WeeklyReport{UserID: "user-1", WeekKey: weekKey, WeekStart: start, WeekEnd: start.AddDate(0, 0, 7), CreatedAt: time.Now()},
			[]*model.GoalSnapshot{{
				GoalID: "goal-1", UserID: "user-1", WeekKey: weekKey,
				WeekStart: start, WeekEnd: start.AddDate(0, 0, 7),
				StreakAfterWeek: i + 1, CreatedAt: time.Now(),
			}},
		)
		if err != nil {
			t.Fatalf("SaveWeek(%s) failed: %v", weekKey, err)
		}
	}

	// Strictly before week 7: week 6's snapshot wins.
	got, err = snapshots.LatestBefore("goal-1", week3)
	if err != nil {
		t.Fatalf("LatestBefore failed: %v", err)
	}
	if got == nil || got.WeekKey != "2026-W06" || got.StreakAfterWeek != 2 {
		t.Errorf("LatestBefore = %+v, want 2026-W06 with streak 2", got)
	}
}

func TestSaveWeekUpsert(t *testing.T) {
	database := newTestDB(t)
	reports := NewReportRepository(database)

	seedUser(t, database, "user-1")
	seedGoal(t, database, "goal-1", "user-1")

	start := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	report := &model.WeeklyReport{
		UserID:    "user-1",
		WeekKey:   "2026-W07",
		WeekStart: start,
		WeekEnd:   start.AddDate(0, 0, 7),
		MoodCount: 3,
		GoalSummaries: model.GoalSummaryList{
			{GoalID: "goal-1", ActualValue: 3, TargetValue: 5},
		},
		CreatedAt: time.Now(),
	}
	snapshot := &model.GoalSnapshot{
		GoalID: "goal-1", UserID: "user-1", WeekKey: "2026-W07",
		WeekStart: start, WeekEnd: start.AddDate(0, 0, 7),
		ActualValue: 3, TargetValue: 5, Comparison: model.ComparisonAtLeast,
		Details:   model.JSONMap{},
		CreatedAt: time.Now(),
	}

	err := reports.SaveWeek(report, []*model.GoalSnapshot{snapshot})
	if err != nil {
		t.Fatalf("first SaveWeek failed: %v", err)
	}

	exists, err := reports.Exists("user-1", "2026-W07")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true, nil", exists, err)
	}

	// Regeneration with new numbers replaces the same rows.
	report.MoodCount = 5
	snapshot.ActualValue = 6
	snapshot.Met = true
	err = reports.SaveWeek(report, []*model.GoalSnapshot{snapshot})
	if err != nil {
		t.Fatalf("second SaveWeek failed: %v", err)
	}

	var reportRows, snapshotRows int
	if err := database.Get(&reportRows, `SELECT COUNT(*) FROM weekly_reports`); err != nil {
		t.Fatalf("count reports: %v", err)
	}
	if err := database.Get(&snapshotRows, `SELECT COUNT(*) FROM goal_snapshots`); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if reportRows != 1 || snapshotRows != 1 {
		t.Errorf("rows = %d reports, %d snapshots; want 1 and 1", reportRows, snapshotRows)
	}

	got, err := reports.ByWeekKey("user-1", "2026-W07")
	if err != nil {
		t.Fatalf("ByWeekKey failed: %v", err)
	}
	if got.MoodCount != 5 {
		t.Errorf("MoodCount after upsert = %d, want 5", got.MoodCount)
	}
	if len(got.GoalSummaries) != 1 || got.GoalSummaries[0].GoalID != "goal-1" {
		t.Errorf("GoalSummaries did not round-trip: %v", got.GoalSummaries)
	}

	snaps := NewSnapshotRepository(database)
	history, err := snaps.ByGoal("goal-1")
	if err != nil {
		t.Fatalf("ByGoal failed: %v", err)
	}
	if len(history) != 1 || history[0].ActualValue != 6 || !history[0].Met {
		t.Errorf("snapshot after upsert = %+v, want actual 6 met", history[0])
	}

	_, err = reports.ByWeekKey("user-1", "2026-W01")
	if err != ErrReportNotFound {
		t.Errorf("ByWeekKey(missing) error = %v, want ErrReportNotFound", err)
	}
}

func TestCheckinMarkDoneWriteOnce(t *testing.T) {
	database := newTestDB(t)
	checkins := NewCheckinRepository(database)

	seedUser(t, database, "user-1")
	seedDailyGoal(t, database, "daily-1", "user-1")

	got, err := checkins.Get("daily-1", "2026-02-11")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get before write = %+v, want nil", got)
	}

	for i := 0; i < 2; i++ {
		err := checkins.MarkDone("daily-1", "user-1", "2026-02-11")
		if err != nil {
			t.Fatalf("MarkDone #%d failed: %v", i+1, err)
		}
	}

	var rows int
	if err := database.Get(&rows, `SELECT COUNT(*) FROM daily_checkins`); err != nil {
		t.Fatalf("count checkins: %v", err)
	}
	if rows != 1 {
		t.Errorf("checkin rows = %d, want 1", rows)
	}

	got, err = checkins.Get("daily-1", "2026-02-11")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || !got.Done {
		t.Errorf("checkin after MarkDone = %+v, want done", got)
	}
}

func TestCheckinDoneSince(t *testing.T) {
	database := newTestDB(t)
	checkins := NewCheckinRepository(database)

	seedUser(t, database, "user-1")
	seedDailyGoal(t, database, "daily-1", "user-1")

	for _, key := range []string{"2026-02-08", "2026-02-10", "2026-02-09"} {
		err := checkins.MarkDone("daily-1", "user-1", key)
		if err != nil {
			t.Fatalf("MarkDone(%s) failed: %v", key, err)
		}
	}

	got, err := checkins.DoneSince("daily-1", "2026-02-09")
	if err != nil {
		t.Fatalf("DoneSince failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("DoneSince returned %d rows, want 2", len(got))
	}
	if got[0].DateKey != "2026-02-09" || got[1].DateKey != "2026-02-10" {
		t.Errorf("DoneSince order = %s, %s; want ascending from 2026-02-09", got[0].DateKey, got[1].DateKey)
	}
}

func TestDailyGoalUpdateStats(t *testing.T) {
	database := newTestDB(t)
	dailies := NewDailyGoalRepository(database)

	seedUser(t, database, "user-1")
	seedDailyGoal(t, database, "daily-1", "user-1")

	weekStart := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	last := "2026-02-11"
	err := dailies.UpdateStats("daily-1", weekStart, 3, 5, &last)
	if err != nil {
		t.Fatalf("UpdateStats failed: %v", err)
	}

	got, err := dailies.ByID("user-1", "daily-1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.CurrentStreakWeeks != 3 || got.BestStreakWeeks != 5 {
		t.Errorf("streaks = %d/%d, want 3/5", got.CurrentStreakWeeks, got.BestStreakWeeks)
	}
	if got.LastCompletedDate == nil || *got.LastCompletedDate != "2026-02-11" {
		t.Errorf("LastCompletedDate = %v, want 2026-02-11", got.LastCompletedDate)
	}
	if got.WeekStart == nil {
		t.Errorf("WeekStart not persisted")
	}

	err = dailies.UpdateStats("missing", weekStart, 0, 0, nil)
	if err != ErrDailyGoalNotFound {
		t.Errorf("UpdateStats(missing) error = %v, want ErrDailyGoalNotFound", err)
	}
}

func TestEntriesInRange(t *testing.T) {
	database := newTestDB(t)
	entries := NewEntryRepository(database)

	seedUser(t, database, "user-1")
	goal := seedGoal(t, database, "goal-1", "user-1")

	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	inWeek := []time.Time{base, base.AddDate(0, 0, 2)}
	outOfWeek := base.AddDate(0, 0, -3)

	for i, ts := range append(inWeek, outOfWeek) {
		err := entries.CreateMood(&model.MoodEntry{
			ID: "mood-" + string(rune('a'+i)), UserID: "user-1",
			Valence: 2, Energy: 1, Emojis: model.StringList{"😊"}, CreatedAt: ts,
		})
		if err != nil {
			t.Fatalf("CreateMood failed: %v", err)
		}
	}

	err := entries.CreateActivity(&model.ActivityLog{
		ID: "act-1", UserID: "user-1", GoalID: goal.ID, Value: 2, CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	from := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7).Add(-time.Millisecond)

	moods, err := entries.MoodsInRange("user-1", from, to)
	if err != nil {
		t.Fatalf("MoodsInRange failed: %v", err)
	}
	if len(moods) != 2 {
		t.Errorf("MoodsInRange returned %d entries, want 2", len(moods))
	}
	if len(moods) > 0 && (len(moods[0].Emojis) != 1 || moods[0].Emojis[0] != "😊") {
		t.Errorf("Emojis did not round-trip: %v", moods[0].Emojis)
	}

	activities, err := entries.ActivitiesInRange("user-1", from, to)
	if err != nil {
		t.Fatalf("ActivitiesInRange failed: %v", err)
	}
	if len(activities) != 1 || activities[0].GoalID != "goal-1" {
		t.Errorf("ActivitiesInRange = %v, want one log for goal-1", activities)
	}
}
