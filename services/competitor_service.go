package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/repositories"
	"github.com/sarzhanov/fishing-live/storage"
)

// CompetitorNotifier pushes the competitors snapshot after a write.
type CompetitorNotifier interface {
	NotifyCompetitors(ctx context.Context) error
}

type CompetitorInput struct {
	Sector   string `json:"sector"`
	Box      int    `json:"box"`
	FullName string `json:"full_name"`
	Team     string `json:"team"`
}

type CompetitorService interface {
	Create(ctx context.Context, input CompetitorInput) (*models.Competitor, error)
	GetByID(ctx context.Context, id int) (*models.Competitor, error)
	Update(ctx context.Context, id int, input CompetitorInput) (*models.Competitor, error)
	// Remove deletes a competitor without entries; a competitor already
	// referenced by entries is deactivated instead.
	Remove(ctx context.Context, id int) error
	SetStatus(ctx context.Context, id int, status models.CompetitorStatus) (*models.Competitor, error)
	List(ctx context.Context) ([]models.Competitor, error)
	UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Competitor, error)
}

type competitorService struct {
	competitorRepo repositories.CompetitorRepository
	uploader       storage.FileUploader
	notifier       CompetitorNotifier
}

func NewCompetitorService(
	competitorRepo repositories.CompetitorRepository,
	uploader storage.FileUploader,
	notifier CompetitorNotifier,
) CompetitorService {
	return &competitorService{
		competitorRepo: competitorRepo,
		uploader:       uploader,
		notifier:       notifier,
	}
}

func validateCompetitorInput(input CompetitorInput) error {
	if !models.IsValidSector(input.Sector) {
		return ErrInvalidSector
	}
	if input.Box < 1 {
		return fmt.Errorf("%w: box number must be positive", ErrValidationFailed)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidationFailed)
	}
	return nil
}

func (s *competitorService) Create(ctx context.Context, input CompetitorInput) (*models.Competitor, error) {
	if err := validateCompetitorInput(input); err != nil {
		return nil, err
	}

	competitor := &models.Competitor{
		Sector:   input.Sector,
		Box:      input.Box,
		FullName: strings.TrimSpace(input.FullName),
		Team:     strings.TrimSpace(input.Team),
		Status:   models.CompetitorActive,
	}
	if err := s.competitorRepo.Create(ctx, competitor); err != nil {
		if errors.Is(err, repositories.ErrCompetitorBoxConflict) {
			return nil, ErrBoxConflict
		}
		return nil, err
	}
	s.notifier.NotifyCompetitors(ctx)
	s.populatePhotoURL(competitor)
	return competitor, nil
}

func (s *competitorService) GetByID(ctx context.Context, id int) (*models.Competitor, error) {
	competitor, err := s.competitorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitorNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, err
	}
	s.populatePhotoURL(competitor)
	return competitor, nil
}

func (s *competitorService) Update(ctx context.Context, id int, input CompetitorInput) (*models.Competitor, error) {
	if err := validateCompetitorInput(input); err != nil {
		return nil, err
	}
	competitor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	competitor.Sector = input.Sector
	competitor.Box = input.Box
	competitor.FullName = strings.TrimSpace(input.FullName)
	competitor.Team = strings.TrimSpace(input.Team)
	if err := s.competitorRepo.Update(ctx, competitor); err != nil {
		if errors.Is(err, repositories.ErrCompetitorBoxConflict) {
			return nil, ErrBoxConflict
		}
		return nil, err
	}
	s.notifier.NotifyCompetitors(ctx)
	s.populatePhotoURL(competitor)
	return competitor, nil
}

func (s *competitorService) Remove(ctx context.Context, id int) error {
	hasEntries, err := s.competitorRepo.HasEntries(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check competitor %d entries: %w", id, err)
	}
	if hasEntries {
		// Referenced by judged records: soft-deactivate keeps history intact.
		if _, err := s.SetStatus(ctx, id, models.CompetitorInactive); err != nil {
			return err
		}
		return ErrCompetitorHasEntries
	}

	if err := s.competitorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCompetitorNotFound) {
			return ErrCompetitorNotFound
		}
		return err
	}
	s.notifier.NotifyCompetitors(ctx)
	return nil
}

func (s *competitorService) SetStatus(ctx context.Context, id int, status models.CompetitorStatus) (*models.Competitor, error) {
	if status != models.CompetitorActive && status != models.CompetitorInactive {
		return nil, fmt.Errorf("%w: unknown competitor status %q", ErrValidationFailed, status)
	}
	competitor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	competitor.Status = status
	if err := s.competitorRepo.Update(ctx, competitor); err != nil {
		return nil, err
	}
	s.notifier.NotifyCompetitors(ctx)
	return competitor, nil
}

func (s *competitorService) List(ctx context.Context) ([]models.Competitor, error) {
	competitors, err := s.competitorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range competitors {
		s.populatePhotoURL(&competitors[i])
	}
	return competitors, nil
}

func (s *competitorService) UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Competitor, error) {
	competitor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("competitors/%d/photo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, photo); err != nil {
		return nil, fmt.Errorf("failed to upload competitor photo: %w", err)
	}

	competitor.PhotoKey = &key
	if err := s.competitorRepo.Update(ctx, competitor); err != nil {
		return nil, err
	}
	s.notifier.NotifyCompetitors(ctx)
	s.populatePhotoURL(competitor)
	return competitor, nil
}

func (s *competitorService) populatePhotoURL(competitor *models.Competitor) {
	if competitor == nil || s.uploader == nil {
		return
	}
	if competitor.PhotoKey != nil && *competitor.PhotoKey != "" {
		url := s.uploader.GetPublicURL(*competitor.PhotoKey)
		if url != "" {
			competitor.PhotoURL = &url
		}
	}
}

// GetExtensionFromContentType maps an image content type to a file extension
// for the object storage key.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported photo content type: %q", contentType)
	}
}
