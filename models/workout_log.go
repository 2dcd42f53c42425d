package models

import (
	"time"
)

// WorkoutLog represents one logged set of an exercise
type WorkoutLog struct {
	ID        int64     `json:"id" db:"id"`
	Date      Date      `json:"date" db:"date"`
	Exercise  string    `json:"exercise" db:"exercise"`
	WeightKg  *float64  `json:"weight_kg" db:"weight_kg"`
	Reps      *int64    `json:"reps" db:"reps"`
	Note      *string   `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WorkoutLogForm represents the JSON body for creating/updating workout logs.
// Every field is a pointer so that an absent (or null) field stays nil. On
// update, nil means "keep the stored value"; there is no way to clear a
// populated column back to null through this form.
type WorkoutLogForm struct {
	Date     *Date    `json:"date" validate:"required"`
	Exercise *string  `json:"exercise" validate:"required,min=1"`
	WeightKg *float64 `json:"weight_kg"`
	Reps     *int64   `json:"reps"`
	Note     *string  `json:"note"`
}
