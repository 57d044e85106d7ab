package services

import (
	"context"
	"errors"
	"time"

	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/repositories"
)

// SettingsNotifier pushes the settings snapshot after a write.
type SettingsNotifier interface {
	NotifySettings(ctx context.Context) error
}

type SettingsUpdateInput struct {
	Name         string                   `json:"name"`
	HoursTotal   int                      `json:"hours_total"`
	Status       models.CompetitionStatus `json:"status"`
	CountdownEnd *time.Time               `json:"countdown_end"`
}

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, input SettingsUpdateInput) (*models.Settings, error)
	// AdvanceHour moves the competition to the next hourly round.
	AdvanceHour(ctx context.Context) (*models.Settings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	notifier     SettingsNotifier
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, notifier SettingsNotifier) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, notifier: notifier}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, input SettingsUpdateInput) (*models.Settings, error) {
	if input.HoursTotal < 1 {
		return nil, ErrHoursTotalInvalid
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.Name = input.Name
	settings.HoursTotal = input.HoursTotal
	settings.Status = input.Status
	settings.CountdownEnd = input.CountdownEnd
	if settings.CurrentHour > settings.HoursTotal {
		settings.CurrentHour = settings.HoursTotal
	}
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	s.notifier.NotifySettings(ctx)
	return settings, nil
}

func (s *settingsService) AdvanceHour(ctx context.Context) (*models.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Status != models.CompetitionRunning {
		return nil, ErrCompetitionNotRunning
	}
	if settings.CurrentHour >= settings.HoursTotal {
		return nil, ErrCurrentHourOutOfRange
	}

	settings.CurrentHour++
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	s.notifier.NotifySettings(ctx)
	return settings, nil
}
