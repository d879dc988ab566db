package handler

import (
	"log/slog"
	"net/http"

	"github.com/serenoapp/sereno/internal/ctxkeys"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/service"
	"github.com/serenoapp/sereno/internal/validation"
)

type DailyGoalHandler struct {
	dailyService *service.DailyGoalService
}

func NewDailyGoalHandler(dailyService *service.DailyGoalService) *DailyGoalHandler {
	return &DailyGoalHandler{
		dailyService: dailyService,
	}
}

type dailyGoalRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (h *DailyGoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req dailyGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := validation.ValidateTitle(req.Title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := h.dailyService.Create(user.ID, req.Title, req.Category)
	if err != nil {
		slog.Error("failed to create daily goal", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to create daily goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *DailyGoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.dailyService.DailyGoals(user.ID)
	if err != nil {
		slog.Error("failed to list daily goals", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load daily goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *DailyGoalHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	result, err := h.dailyService.ToggleToday(user.ID, goalID)
	if err == repository.ErrDailyGoalNotFound {
		http.Error(w, "Daily goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to toggle daily goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to toggle daily goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alreadyDone": result.AlreadyDone,
		"dateKey":     result.DateKey,
	})
}

// Stats returns the goal's streak counters plus the current week's completion.
func (h *DailyGoalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.dailyService.ByID(user.ID, goalID)
	if err == repository.ErrDailyGoalNotFound {
		http.Error(w, "Daily goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get daily goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to load daily goal", http.StatusInternalServerError)
		return
	}

	completion, err := h.dailyService.WeekStatus(user.ID, goalID)
	if err != nil {
		slog.Error("failed to get week status", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to load week status", http.StatusInternalServerError)
		return
	}

	todayDone, err := h.dailyService.TodayDone(user.ID, goalID)
	if err != nil {
		slog.Error("failed to get today status", "error", err, "user_id", user.ID, "goal_id", goalID)
		http.Error(w, "Failed to load today status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goal":      goal,
		"todayDone": todayDone,
		"week": map[string]any{
			"weekKey":           h.dailyService.CurrentWeekKey(),
			"completedDays":     completion.CompletedDays,
			"totalDays":         completion.TotalDays,
			"completionRatio":   completion.CompletionRatio,
			"completionPercent": completion.CompletionPercent,
		},
	})
}
