package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/serenoapp/sereno/internal/ctxkeys"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type generateRequest struct {
	// ReferenceDate defaults to now; RFC 3339. Lets the UI (or a backfill
	// script) generate a past week's report.
	ReferenceDate string `json:"referenceDate"`
	Force         bool   `json:"force"`
}

func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	req := generateRequest{}
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	ref := time.Now()
	if req.ReferenceDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ReferenceDate)
		if err != nil {
			http.Error(w, "Invalid referenceDate (want RFC 3339)", http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	result, err := h.reportService.Generate(r.Context(), user.ID, ref, req.Force)
	if err == service.ErrNoActiveGoals {
		http.Error(w, "No active goals to evaluate", http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("failed to generate weekly report", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	if result.Skipped {
		writeJSON(w, http.StatusOK, map[string]any{
			"skipped": true,
			"weekKey": result.WeekKey,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"skipped":       false,
		"weekKey":       result.WeekKey,
		"weekStart":     result.WeekStart,
		"weekEnd":       result.WeekEnd,
		"goalSummaries": result.GoalSummaries,
		"moodOverview": map[string]any{
			"count":      result.MoodOverview.Count,
			"avgValence": result.MoodOverview.AvgValence,
			"avgEnergy":  result.MoodOverview.AvgEnergy,
		},
		"habitOverview": map[string]any{
			"count":     result.HabitOverview.Count,
			"histogram": result.HabitOverview.Histogram,
		},
	})
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	weekKey := r.PathValue("weekKey")

	report, err := h.reportService.ReportByKey(user.ID, weekKey)
	if err == repository.ErrReportNotFound {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get weekly report", "error", err, "user_id", user.ID, "week_key", weekKey)
		http.Error(w, "Failed to load report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	reports, err := h.reportService.Reports(user.ID)
	if err != nil {
		slog.Error("failed to list weekly reports", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, reports)
}
