package services

import (
	"github.com/liftlog/workout-log/repositories"
)

// Services holds all service instances
type Services struct {
	Workouts WorkoutService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) (*Services, error) {
	workouts, err := NewWorkoutService(repos.Workouts)
	if err != nil {
		return nil, err
	}

	return &Services{
		Workouts: workouts,
	}, nil
}
