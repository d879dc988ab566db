package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/db"
	"github.com/serenoapp/sereno/internal/model"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/week"
	_ "modernc.org/sqlite"
)

// testEnv wires the full service stack against an in-memory sqlite database.
type testEnv struct {
	db       *sqlx.DB
	calc     *week.Calculator
	users    repository.UserRepository
	goals    *GoalService
	entries  *EntryService
	reports  *ReportService
	dailies  *DailyGoalService
	checkins repository.CheckinRepository
}

func newTestEnv(t *testing.T) *testEnv {
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

	userRepo := repository.NewUserRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	entryRepo := repository.NewEntryRepository(database)
	snapshotRepo := repository.NewSnapshotRepository(database)
	reportRepo := repository.NewReportRepository(database)
	dailyRepo := repository.NewDailyGoalRepository(database)
	checkinRepo := repository.NewCheckinRepository(database)

	// Entries are stamped with local time.Now(), so week boundaries must be
	// local as well or boundary comparisons drift by the zone offset.
	calc := week.NewCalculator(nil)
	notify := NewNotifyService("", "noreply@example.com", "Sereno", true)

	return &testEnv{
		db:       database,
		calc:     calc,
		users:    userRepo,
		goals:    NewGoalService(goalRepo, snapshotRepo, 3),
		entries:  NewEntryService(entryRepo, goalRepo),
		reports:  NewReportService(goalRepo, entryRepo, snapshotRepo, reportRepo, userRepo, notify, calc),
		dailies:  NewDailyGoalService(dailyRepo, checkinRepo, calc, 20, 0.6),
		checkins: checkinRepo,
	}
}

func (e *testEnv) seedUser(t *testing.T, id string) {
	t.Helper()
	err := e.users.Create(&model.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Test User",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func (e *testEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := e.db.Get(&n, "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
