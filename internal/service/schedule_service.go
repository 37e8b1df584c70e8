package service

import (
	"context"
	"time"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

// ScheduleService manages the gym's weekly opening hours, a remote-only
// document.
type ScheduleService interface {
	// Get returns repository.ErrNotFound when no schedule is stored or the
	// remote store is not selected.
	Get(ctx context.Context) (*domain.GymSchedule, error)
	Save(ctx context.Context, schedule *domain.GymSchedule) (*domain.GymSchedule, error)
}

type scheduleService struct {
	backends *Backends
}

func NewScheduleService(backends *Backends) ScheduleService {
	return &scheduleService{backends: backends}
}

func (s *scheduleService) Get(ctx context.Context) (*domain.GymSchedule, error) {
	if !s.backends.RemoteSelected(ctx) {
		return nil, repository.ErrNotFound
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	schedule, err := repos.Schedule.Get(ctx)
	return schedule, s.backends.observe(ctx, "schedule.get", true, err)
}

func validateSchedule(schedule *domain.GymSchedule) error {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := schedule.Day(wd)
		if !day.IsOpen {
			continue
		}
		open, err := time.Parse("15:04", day.Open)
		if err != nil {
			return validationError("%s: invalid opening time %q", wd, day.Open)
		}
		closing, err := time.Parse("15:04", day.Close)
		if err != nil {
			return validationError("%s: invalid closing time %q", wd, day.Close)
		}
		if !closing.After(open) {
			return validationError("%s: closing time must be after opening time", wd)
		}
	}
	return nil
}

func (s *scheduleService) Save(ctx context.Context, schedule *domain.GymSchedule) (*domain.GymSchedule, error) {
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	_, err = repos.Schedule.Save(ctx, schedule)
	return schedule, s.backends.observe(ctx, "schedule.save", true, err)
}
