package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/liftlog/workout-log/repositories"
	"github.com/liftlog/workout-log/services"
)

// respondJSON writes v as a JSON response with the provided status code
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes the standard error body {"error": message}
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondServiceError maps a service error onto the HTTP contract:
// validation failures become 400, unknown IDs become 404 and anything else
// is a store failure reported as 500 with the error message as the body.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, repositories.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Workouts *WorkoutController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Workouts: NewWorkoutController(services),
	}
}
