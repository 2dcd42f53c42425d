package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/liftlog/workout-log/models"
)

// ErrNotFound is returned when no workout log matches the requested ID
var ErrNotFound = errors.New("workout log not found")

// WorkoutLogRepository interface defines workout log database operations
type WorkoutLogRepository interface {
	Create(ctx context.Context, form *models.WorkoutLogForm) (*models.WorkoutLog, error)
	GetAll(ctx context.Context) ([]models.WorkoutLog, error)
	Update(ctx context.Context, id int64, form *models.WorkoutLogForm) (*models.WorkoutLog, error)
	Delete(ctx context.Context, id int64) error
	PersonalBests(ctx context.Context) ([]models.WorkoutLog, error)
	HistoryByExercise(ctx context.Context, exercise string) ([]models.WorkoutLog, error)
}

// workoutLogRepository implements WorkoutLogRepository interface
type workoutLogRepository struct {
	db *sqlx.DB
}

// NewWorkoutLogRepository creates a new workout log repository
func NewWorkoutLogRepository(db *sqlx.DB) WorkoutLogRepository {
	return &workoutLogRepository{db: db}
}

// Create inserts a new workout log and returns the stored row with its
// assigned ID and created_at timestamp
func (r *workoutLogRepository) Create(ctx context.Context, form *models.WorkoutLogForm) (*models.WorkoutLog, error) {
	query := `
		INSERT INTO workout_logs (date, exercise, weight_kg, reps, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date, exercise, weight_kg, reps, note, created_at
	`

	var entry models.WorkoutLog
	err := r.db.GetContext(ctx, &entry, query,
		form.Date,
		form.Exercise,
		form.WeightKg,
		form.Reps,
		form.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workout log: %w", err)
	}

	return &entry, nil
}

// GetAll retrieves all workout logs, newest date first. Entries sharing a
// date come back newest-inserted first.
func (r *workoutLogRepository) GetAll(ctx context.Context) ([]models.WorkoutLog, error) {
	query := `
		SELECT id, date, exercise, weight_kg, reps, note, created_at
		FROM workout_logs
		ORDER BY date DESC, id DESC
	`

	logs := []models.WorkoutLog{}
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("failed to query workout logs: %w", err)
	}

	return logs, nil
}

// Update applies a partial update to a workout log. Nil form fields keep
// the stored column value via COALESCE, so a single statement covers any
// subset of fields.
func (r *workoutLogRepository) Update(ctx context.Context, id int64, form *models.WorkoutLogForm) (*models.WorkoutLog, error) {
	query := `
		UPDATE workout_logs
		SET date      = COALESCE($1, date),
		    exercise  = COALESCE($2, exercise),
		    weight_kg = COALESCE($3, weight_kg),
		    reps      = COALESCE($4, reps),
		    note      = COALESCE($5, note)
		WHERE id = $6
		RETURNING id, date, exercise, weight_kg, reps, note, created_at
	`

	var entry models.WorkoutLog
	err := r.db.GetContext(ctx, &entry, query,
		form.Date,
		form.Exercise,
		form.WeightKg,
		form.Reps,
		form.Note,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update workout log: %w", err)
	}

	return &entry, nil
}

// Delete deletes a workout log by ID
func (r *workoutLogRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM workout_logs WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// PersonalBests retrieves the heaviest logged set per exercise, ordered by
// exercise name. Ties on weight go to the most recent date, then the
// highest ID. Entries without a recorded weight never qualify.
func (r *workoutLogRepository) PersonalBests(ctx context.Context) ([]models.WorkoutLog, error) {
	query := `
		SELECT DISTINCT ON (exercise)
		       id, date, exercise, weight_kg, reps, note, created_at
		FROM workout_logs
		WHERE weight_kg IS NOT NULL
		ORDER BY exercise ASC, weight_kg DESC, date DESC, id DESC
	`

	logs := []models.WorkoutLog{}
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("failed to query personal bests: %w", err)
	}

	return logs, nil
}

// HistoryByExercise retrieves every weighted entry for one exercise,
// heaviest first, with the same tie-break order as PersonalBests. The match
// is exact and case-sensitive; an unknown exercise yields an empty slice.
func (r *workoutLogRepository) HistoryByExercise(ctx context.Context, exercise string) ([]models.WorkoutLog, error) {
	query := `
		SELECT id, date, exercise, weight_kg, reps, note, created_at
		FROM workout_logs
		WHERE exercise = $1 AND weight_kg IS NOT NULL
		ORDER BY weight_kg DESC, date DESC, id DESC
	`

	logs := []models.WorkoutLog{}
	if err := r.db.SelectContext(ctx, &logs, query, exercise); err != nil {
		return nil, fmt.Errorf("failed to query exercise history: %w", err)
	}

	return logs, nil
}
