package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/liftlog/workout-log/models"
	"github.com/liftlog/workout-log/services"
)

// WorkoutController handles workout log requests
type WorkoutController struct {
	services *services.Services
}

// NewWorkoutController creates a new workout controller
func NewWorkoutController(services *services.Services) *WorkoutController {
	return &WorkoutController{
		services: services,
	}
}

// Create handles POST /api/workouts
func (c *WorkoutController) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	entry, err := c.services.Workouts.CreateLog(r.Context(), form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// List handles GET /api/workouts
func (c *WorkoutController) List(w http.ResponseWriter, r *http.Request) {
	logs, err := c.services.Workouts.GetAllLogs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

// Update handles PUT /api/workouts/{id}
func (c *WorkoutController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid workout log ID")
		return
	}

	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	entry, err := c.services.Workouts.UpdateLog(r.Context(), id, form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/workouts/{id}
func (c *WorkoutController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid workout log ID")
		return
	}

	if err := c.services.Workouts.DeleteLog(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PersonalBests handles GET /api/bests
func (c *WorkoutController) PersonalBests(w http.ResponseWriter, r *http.Request) {
	bests, err := c.services.Workouts.GetPersonalBests(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bests)
}

// History handles GET /api/bests/{exercise}
func (c *WorkoutController) History(w http.ResponseWriter, r *http.Request) {
	exercise := chi.URLParam(r, "exercise")
	if unescaped, err := url.PathUnescape(exercise); err == nil {
		exercise = unescaped
	}

	history, err := c.services.Workouts.GetExerciseHistory(r.Context(), exercise)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// decodeForm reads the request body into a WorkoutLogForm. An empty body is
// treated as an empty form so that requests like a no-op update still work.
// Returns false after writing the error response when the body is invalid.
func decodeForm(w http.ResponseWriter, r *http.Request) (*models.WorkoutLogForm, bool) {
	var form models.WorkoutLogForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return &form, true
}
