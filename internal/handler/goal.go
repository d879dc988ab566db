package handler

import (
	"log/slog"
	"net/http"

	"github.com/serenoapp/sereno/internal/ctxkeys"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/service"
	"github.com/serenoapp/sereno/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalRequest struct {
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	MetricType       string   `json:"metricType"`
	Comparison       string   `json:"comparison"`
	TargetValue      float64  `json:"targetValue"`
	FilterEmojis     []string `json:"filterEmojis"`
	FilterCategories []string `json:"filterCategories"`
	MeasurementLabel string   `json:"measurementLabel"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := validation.ValidateTitle(req.Title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = validation.ValidateGoal(req.Category, req.MetricType, req.Comparison, req.TargetValue, req.FilterEmojis, req.FilterCategories)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := h.goalService.Create(user.ID, service.GoalInput{
		Title:            req.Title,
		Category:         req.Category,
		MetricType:       req.MetricType,
		Comparison:       req.Comparison,
		TargetValue:      req.TargetValue,
		FilterEmojis:     req.FilterEmojis,
		FilterCategories: req.FilterCategories,
		MeasurementLabel: req.MeasurementLabel,
	})
	if err == service.ErrActiveGoalLimit {
		http.Error(w, "Active goal limit reached", http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err == repository.ErrGoalNotFound {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to load goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Activate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Activate(user.ID, goalID)
	switch {
	case err == repository.ErrGoalNotFound:
		http.Error(w, "Goal not found", http.StatusNotFound)
	case err == service.ErrGoalAlreadyActive:
		http.Error(w, "Goal is already active", http.StatusConflict)
	case err == service.ErrActiveGoalLimit:
		http.Error(w, "Active goal limit reached", http.StatusConflict)
	case err != nil:
		slog.Error("failed to activate goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to activate goal", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *GoalHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Archive(user.ID, goalID)
	switch {
	case err == repository.ErrGoalNotFound:
		http.Error(w, "Goal not found", http.StatusNotFound)
	case err == service.ErrGoalNotActive:
		http.Error(w, "Goal is not active", http.StatusConflict)
	case err != nil:
		slog.Error("failed to archive goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to archive goal", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *GoalHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	snapshots, err := h.goalService.Snapshots(user.ID, goalID)
	if err == repository.ErrGoalNotFound {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to list snapshots", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to load snapshots", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snapshots)
}
