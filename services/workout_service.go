package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/liftlog/workout-log/models"
	"github.com/liftlog/workout-log/repositories"
)

// ValidationError reports the missing or invalid fields of a request payload
type ValidationError struct {
	Fields []string
}

// Error joins all field messages into a single line
func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

// WorkoutService interface defines workout log business logic
type WorkoutService interface {
	CreateLog(ctx context.Context, form *models.WorkoutLogForm) (*models.WorkoutLog, error)
	GetAllLogs(ctx context.Context) ([]models.WorkoutLog, error)
	UpdateLog(ctx context.Context, id int64, form *models.WorkoutLogForm) (*models.WorkoutLog, error)
	DeleteLog(ctx context.Context, id int64) error
	GetPersonalBests(ctx context.Context) ([]models.WorkoutLog, error)
	GetExerciseHistory(ctx context.Context, exercise string) ([]models.WorkoutLog, error)
}

// workoutService implements WorkoutService interface
type workoutService struct {
	repo       repositories.WorkoutLogRepository
	validate   *validator.Validate
	translator ut.Translator
}

// NewWorkoutService creates a new workout service
func NewWorkoutService(repo repositories.WorkoutLogRepository) (WorkoutService, error) {
	validate, translator, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &workoutService{
		repo:       repo,
		validate:   validate,
		translator: translator,
	}, nil
}

// newValidator builds a validator whose messages use the JSON field names
func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, nil, fmt.Errorf("failed to register translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate, translator, nil
}

// CreateLog validates the form and stores a new workout log. Date and
// exercise are required; weight, reps and note are stored as NULL when
// absent.
func (s *workoutService) CreateLog(ctx context.Context, form *models.WorkoutLogForm) (*models.WorkoutLog, error) {
	if err := s.checkForm(form); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, form)
}

// GetAllLogs retrieves all workout logs, newest first
func (s *workoutService) GetAllLogs(ctx context.Context) ([]models.WorkoutLog, error) {
	return s.repo.GetAll(ctx)
}

// UpdateLog applies the form's non-nil fields to an existing workout log.
// Absent fields keep their stored values, so the form is not re-validated
// for required fields here.
func (s *workoutService) UpdateLog(ctx context.Context, id int64, form *models.WorkoutLogForm) (*models.WorkoutLog, error) {
	if id <= 0 {
		return nil, repositories.ErrNotFound
	}
	return s.repo.Update(ctx, id, form)
}

// DeleteLog deletes a workout log by ID
func (s *workoutService) DeleteLog(ctx context.Context, id int64) error {
	if id <= 0 {
		return repositories.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// GetPersonalBests retrieves the heaviest entry per exercise
func (s *workoutService) GetPersonalBests(ctx context.Context) ([]models.WorkoutLog, error) {
	return s.repo.PersonalBests(ctx)
}

// GetExerciseHistory retrieves all entries for one exercise, heaviest first
func (s *workoutService) GetExerciseHistory(ctx context.Context, exercise string) ([]models.WorkoutLog, error) {
	return s.repo.HistoryByExercise(ctx, exercise)
}

// checkForm runs struct validation and converts the result into a
// ValidationError with one translated message per failed field
func (s *workoutService) checkForm(form *models.WorkoutLogForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate workout log: %w", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Translate(s.translator))
	}
	return &ValidationError{Fields: fields}
}
