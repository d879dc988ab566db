package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/serenoapp/sereno/internal/config"
	"github.com/serenoapp/sereno/internal/db"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/service"
	"github.com/serenoapp/sereno/internal/week"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Calc             *week.Calculator
	UserRepository   repository.UserRepository
	GoalService      *service.GoalService
	EntryService     *service.EntryService
	ReportService    *service.ReportService
	DailyGoalService *service.DailyGoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	entryRepository := repository.NewEntryRepository(database)
	snapshotRepository := repository.NewSnapshotRepository(database)
	reportRepository := repository.NewReportRepository(database)
	dailyGoalRepository := repository.NewDailyGoalRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)

	// Week boundaries are local-time and fixed for the process lifetime.
	calc := week.NewCalculator(nil)

	// Services
	notifyService := service.NewNotifyService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppName, cfg.IsDevelopment())
	goalService := service.NewGoalService(goalRepository, snapshotRepository, cfg.ActiveGoalLimit)
	entryService := service.NewEntryService(entryRepository, goalRepository)
	reportService := service.NewReportService(
		goalRepository,
		entryRepository,
		snapshotRepository,
		reportRepository,
		userRepository,
		notifyService,
		calc,
	)
	dailyGoalService := service.NewDailyGoalService(
		dailyGoalRepository,
		checkinRepository,
		calc,
		cfg.StreakWindowWeeks,
		cfg.WeekSuccessThreshold,
	)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Calc:             calc,
		UserRepository:   userRepository,
		GoalService:      goalService,
		EntryService:     entryService,
		ReportService:    reportService,
		DailyGoalService: dailyGoalService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
