package routes

import (
	"net/http"

	"github.com/serenoapp/sereno/internal/app"
	"github.com/serenoapp/sereno/internal/handler"
	"github.com/serenoapp/sereno/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(a.DB)
	goal := handler.NewGoalHandler(a.GoalService)
	entry := handler.NewEntryHandler(a.EntryService, a.Calc)
	report := handler.NewReportHandler(a.ReportService)
	daily := handler.NewDailyGoalHandler(a.DailyGoalService)

	auth := middleware.RequireUser(a.UserRepository)
	reportLimiter := middleware.RateLimitReports()

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Weekly custom goals
	mux.HandleFunc("POST /goals", auth(goal.Create))
	mux.HandleFunc("GET /goals", auth(goal.List))
	mux.HandleFunc("GET /goals/{id}", auth(goal.Get))
	mux.HandleFunc("POST /goals/{id}/activate", auth(goal.Activate))
	mux.HandleFunc("POST /goals/{id}/archive", auth(goal.Archive))
	mux.HandleFunc("GET /goals/{id}/snapshots", auth(goal.Snapshots))

	// Raw entries (owned by the UI collaborators; read-only to the engine)
	mux.HandleFunc("POST /entries/mood", auth(entry.LogMood))
	mux.HandleFunc("POST /entries/habit", auth(entry.LogHabit))
	mux.HandleFunc("POST /entries/activity", auth(entry.LogActivity))
	mux.HandleFunc("GET /entries/week", auth(entry.Week))

	// Weekly reports
	mux.HandleFunc("POST /reports", reportLimiter(auth(report.Generate)))
	mux.HandleFunc("GET /reports", auth(report.List))
	mux.HandleFunc("GET /reports/{weekKey}", auth(report.Get))

	// Daily goals and check-ins
	mux.HandleFunc("POST /daily-goals", auth(daily.Create))
	mux.HandleFunc("GET /daily-goals", auth(daily.List))
	mux.HandleFunc("POST /daily-goals/{id}/toggle", auth(daily.Toggle))
	mux.HandleFunc("GET /daily-goals/{id}/stats", auth(daily.Stats))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
