package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the complete DDL for the service. Every statement is idempotent,
// so there is no migration tracking: the schema is applied on every startup
// and only changes anything the first time.
const schema = `
CREATE TABLE IF NOT EXISTS workout_logs (
	id         SERIAL PRIMARY KEY,
	date       DATE NOT NULL,
	exercise   TEXT NOT NULL,
	weight_kg  NUMERIC(5,2),
	reps       INTEGER,
	note       TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_workout_logs_exercise_weight
	ON workout_logs (exercise, weight_kg DESC);

CREATE INDEX IF NOT EXISTS idx_workout_logs_date
	ON workout_logs (date DESC, id DESC);
`

// EnsureSchema creates the workout_logs table and its indexes if they do
// not exist yet
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
