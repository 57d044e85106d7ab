package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sarzhanov/fishing-live/models"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository manages the single competition configuration row.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

type postgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

func (r *postgresSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, name, hours_total, current_hour, status, countdown_end, updated_at
		FROM settings LIMIT 1`

	var s models.Settings
	var countdownEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Name, &s.HoursTotal, &s.CurrentHour, &s.Status, &countdownEnd, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if countdownEnd.Valid {
		s.CountdownEnd = &countdownEnd.Time
	}
	return &s, nil
}

func (r *postgresSettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	query := `
		UPDATE settings SET
			name = $1, hours_total = $2, current_hour = $3, status = $4,
			countdown_end = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		settings.Name, settings.HoursTotal, settings.CurrentHour, settings.Status,
		settings.CountdownEnd, settings.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return checkAffectedRows(result, ErrSettingsNotFound)
}
