package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/serenoapp/sereno/internal/ctxkeys"
	"github.com/serenoapp/sereno/internal/repository"
	"github.com/serenoapp/sereno/internal/service"
	"github.com/serenoapp/sereno/internal/validation"
	"github.com/serenoapp/sereno/internal/week"
)

type EntryHandler struct {
	entryService *service.EntryService
	calc         *week.Calculator
}

func NewEntryHandler(entryService *service.EntryService, calc *week.Calculator) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		calc:         calc,
	}
}

type moodRequest struct {
	Valence float64  `json:"valence"`
	Energy  float64  `json:"energy"`
	Emojis  []string `json:"emojis"`
	Note    string   `json:"note"`
}

func (h *EntryHandler) LogMood(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req moodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := validation.ValidateMoodValues(req.Valence, req.Energy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.entryService.LogMood(user.ID, req.Valence, req.Energy, req.Emojis, req.Note)
	if err != nil {
		slog.Error("failed to log mood", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to log mood", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

type habitRequest struct {
	Tags []string `json:"tags"`
	Note string   `json:"note"`
}

func (h *EntryHandler) LogHabit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req habitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Tags) == 0 {
		http.Error(w, "At least one tag is required", http.StatusBadRequest)
		return
	}

	entry, err := h.entryService.LogHabit(user.ID, req.Tags, req.Note)
	if err != nil {
		slog.Error("failed to log habit", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to log habit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

type activityRequest struct {
	GoalID string  `json:"goalId"`
	Value  float64 `json:"value"`
	Note   string  `json:"note"`
}

func (h *EntryHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.GoalID == "" {
		http.Error(w, "goalId is required", http.StatusBadRequest)
		return
	}

	log, err := h.entryService.LogActivity(user.ID, req.GoalID, req.Value, req.Note)
	if err == repository.ErrGoalNotFound {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to log activity", "error", err, "user_id", user.ID, "goal_id", req.GoalID)
		http.Error(w, "Failed to log activity", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

// Week lists the current week's raw entries, the same window the report
// generator would read.
func (h *EntryHandler) Week(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	win := h.calc.WindowFor(time.Now())

	moods, err := h.entryService.MoodsInRange(user.ID, win.Start, win.End)
	if err != nil {
		slog.Error("failed to list mood entries", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	habits, err := h.entryService.HabitsInRange(user.ID, win.Start, win.End)
	if err != nil {
		slog.Error("failed to list habit entries", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	activities, err := h.entryService.ActivitiesInRange(user.ID, win.Start, win.End)
	if err != nil {
		slog.Error("failed to list activity logs", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"weekStart":  win.Start,
		"weekEnd":    win.End,
		"moods":      moods,
		"habits":     habits,
		"activities": activities,
	})
}
