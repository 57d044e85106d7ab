package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/repositories"
	"github.com/sarzhanov/fishing-live/scoring"
)

// EntryNotifier is the store surface the entry service pushes snapshots
// through after a successful write.
type EntryNotifier interface {
	NotifyHourlyEntries(ctx context.Context) error
	NotifyBigCatches(ctx context.Context) error
}

type HourlyEntryInput struct {
	CompetitorID int     `json:"competitor_id" validate:"required,gt=0"`
	Hour         int     `json:"hour" validate:"required,gte=1"`
	FishCount    int     `json:"fish_count" validate:"gte=0"`
	Weight       float64 `json:"weight" validate:"gte=0"`
}

type BigCatchInput struct {
	CompetitorID int     `json:"competitor_id" validate:"required,gt=0"`
	Weight       float64 `json:"weight" validate:"gt=0"`
}

type EntryService interface {
	CreateHourlyEntry(ctx context.Context, judgeID int, input HourlyEntryInput) (*models.HourlyEntry, error)
	CorrectHourlyEntry(ctx context.Context, entryID int, input HourlyEntryInput) (*models.HourlyEntry, error)
	SubmitHourlyEntry(ctx context.Context, entryID int) (*models.HourlyEntry, error)
	LockHourlyEntry(ctx context.Context, entryID int, role string, offline bool) (*models.HourlyEntry, error)
	ListHourlyEntries(ctx context.Context, competitorID, hour int) ([]models.HourlyEntry, error)

	RecordBigCatch(ctx context.Context, judgeID int, input BigCatchInput) (*models.BigCatchEntry, error)
	SubmitBigCatch(ctx context.Context, competitorID int) (*models.BigCatchEntry, error)
	LockBigCatch(ctx context.Context, competitorID int, role string, offline bool) (*models.BigCatchEntry, error)
}

type entryService struct {
	hourlyRepo     repositories.HourlyEntryRepository
	bigCatchRepo   repositories.BigCatchRepository
	competitorRepo repositories.CompetitorRepository
	settingsRepo   repositories.SettingsRepository
	notifier       EntryNotifier
	validate       *validator.Validate
}

func NewEntryService(
	hourlyRepo repositories.HourlyEntryRepository,
	bigCatchRepo repositories.BigCatchRepository,
	competitorRepo repositories.CompetitorRepository,
	settingsRepo repositories.SettingsRepository,
	notifier EntryNotifier,
) EntryService {
	return &entryService{
		hourlyRepo:     hourlyRepo,
		bigCatchRepo:   bigCatchRepo,
		competitorRepo: competitorRepo,
		settingsRepo:   settingsRepo,
		notifier:       notifier,
		validate:       validator.New(),
	}
}

// checkCompetitor ensures the referenced competitor exists and is active.
func (s *entryService) checkCompetitor(ctx context.Context, competitorID int) error {
	competitor, err := s.competitorRepo.GetByID(ctx, competitorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitorNotFound) {
			return ErrCompetitorNotFound
		}
		return fmt.Errorf("failed to load competitor %d: %w", competitorID, err)
	}
	if competitor.Status != models.CompetitorActive {
		return ErrCompetitorInactive
	}
	return nil
}

// checkHour validates the hour slot against the configured rounds. A missing
// settings row falls back to the default round count.
func (s *entryService) checkHour(ctx context.Context, hour int) error {
	hoursTotal := 0
	settings, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		hoursTotal = settings.HoursTotal
	case errors.Is(err, repositories.ErrSettingsNotFound):
		hoursTotal = scoring.DefaultHoursTotal
	default:
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if hour < 1 || hour > hoursTotal {
		return ErrInvalidHour
	}
	return nil
}

func (s *entryService) CreateHourlyEntry(ctx context.Context, judgeID int, input HourlyEntryInput) (*models.HourlyEntry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.checkCompetitor(ctx, input.CompetitorID); err != nil {
		return nil, err
	}
	if err := s.checkHour(ctx, input.Hour); err != nil {
		return nil, err
	}

	entry := &models.HourlyEntry{
		CompetitorID: input.CompetitorID,
		Hour:         input.Hour,
		FishCount:    input.FishCount,
		Weight:       input.Weight,
		Status:       models.EntryDraft,
		JudgeID:      judgeID,
	}
	if err := s.hourlyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.notifier.NotifyHourlyEntries(ctx)
	return entry, nil
}

// CorrectHourlyEntry updates the numbers of a provisional entry. Locked
// entries are immutable; a late correction means a new entry row.
func (s *entryService) CorrectHourlyEntry(ctx context.Context, entryID int, input HourlyEntryInput) (*models.HourlyEntry, error) {
	if input.FishCount < 0 || input.Weight < 0 {
		return nil, ErrNegativeCatch
	}
	entry, err := s.getHourly(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status.Terminal() {
		return nil, ErrEntryLocked
	}

	entry.FishCount = input.FishCount
	entry.Weight = input.Weight
	if err := s.hourlyRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.notifier.NotifyHourlyEntries(ctx)
	return entry, nil
}

func (s *entryService) SubmitHourlyEntry(ctx context.Context, entryID int) (*models.HourlyEntry, error) {
	return s.transitionHourly(ctx, entryID, models.EntrySubmitted)
}

func (s *entryService) LockHourlyEntry(ctx context.Context, entryID int, role string, offline bool) (*models.HourlyEntry, error) {
	entry, err := s.getHourly(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := checkLockActor(entry.Status, role, offline); err != nil {
		return nil, err
	}
	return s.transitionHourly(ctx, entryID, lockStatus(role, offline))
}

func (s *entryService) transitionHourly(ctx context.Context, entryID int, next models.EntryStatus) (*models.HourlyEntry, error) {
	entry, err := s.getHourly(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, entry.Status, next)
	}
	if err := s.hourlyRepo.UpdateStatus(ctx, entryID, next); err != nil {
		return nil, err
	}
	entry.Status = next
	s.notifier.NotifyHourlyEntries(ctx)
	return entry, nil
}

func (s *entryService) getHourly(ctx context.Context, entryID int) (*models.HourlyEntry, error) {
	entry, err := s.hourlyRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrHourlyEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListHourlyEntries(ctx context.Context, competitorID, hour int) ([]models.HourlyEntry, error) {
	return s.hourlyRepo.ListByCompetitorAndHour(ctx, competitorID, hour)
}

// RecordBigCatch writes the competitor's authoritative biggest-catch record.
// Re-recording before locking simply replaces the provisional value.
func (s *entryService) RecordBigCatch(ctx context.Context, judgeID int, input BigCatchInput) (*models.BigCatchEntry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.checkCompetitor(ctx, input.CompetitorID); err != nil {
		return nil, err
	}

	current, err := s.bigCatchRepo.GetByCompetitor(ctx, input.CompetitorID)
	if err == nil && current.Status.Terminal() {
		return nil, ErrEntryLocked
	}
	if err != nil && !errors.Is(err, repositories.ErrBigCatchNotFound) {
		return nil, err
	}

	entry := &models.BigCatchEntry{
		CompetitorID: input.CompetitorID,
		Weight:       input.Weight,
		Status:       models.EntryDraft,
		JudgeID:      judgeID,
	}
	if err := s.bigCatchRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	s.notifier.NotifyBigCatches(ctx)
	return entry, nil
}

func (s *entryService) SubmitBigCatch(ctx context.Context, competitorID int) (*models.BigCatchEntry, error) {
	return s.transitionBigCatch(ctx, competitorID, models.EntrySubmitted)
}

func (s *entryService) LockBigCatch(ctx context.Context, competitorID int, role string, offline bool) (*models.BigCatchEntry, error) {
	entry, err := s.bigCatchRepo.GetByCompetitor(ctx, competitorID)
	if err != nil {
		if errors.Is(err, repositories.ErrBigCatchNotFound) {
			return nil, ErrBigCatchNotFound
		}
		return nil, err
	}
	if err := checkLockActor(entry.Status, role, offline); err != nil {
		return nil, err
	}
	return s.transitionBigCatch(ctx, competitorID, lockStatus(role, offline))
}

func (s *entryService) transitionBigCatch(ctx context.Context, competitorID int, next models.EntryStatus) (*models.BigCatchEntry, error) {
	entry, err := s.bigCatchRepo.GetByCompetitor(ctx, competitorID)
	if err != nil {
		if errors.Is(err, repositories.ErrBigCatchNotFound) {
			return nil, ErrBigCatchNotFound
		}
		return nil, err
	}
	if !entry.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, entry.Status, next)
	}
	if err := s.bigCatchRepo.UpdateStatus(ctx, entry.ID, next); err != nil {
		return nil, err
	}
	entry.Status = next
	s.notifier.NotifyBigCatches(ctx)
	return entry, nil
}

// checkLockActor gates locking a draft: only an admin may lock one
// directly. A judge submits first (online) or hands the entry to admin
// reconciliation (offline).
func checkLockActor(status models.EntryStatus, role string, offline bool) error {
	if status != models.EntryDraft || role == models.RoleAdmin {
		return nil
	}
	if offline {
		return ErrOfflineReconcileRequired
	}
	return ErrAdminLockRequired
}

// lockStatus maps the actor role and channel to the terminal entry status.
func lockStatus(role string, offline bool) models.EntryStatus {
	if role == models.RoleAdmin {
		if offline {
			return models.EntryOfflineAdmin
		}
		return models.EntryLockedAdmin
	}
	if offline {
		return models.EntryOfflineJudge
	}
	return models.EntryLockedJudge
}
