package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sarzhanov/fishing-live/models"
)

var ErrHourlyEntryNotFound = errors.New("hourly entry not found")

type HourlyEntryRepository interface {
	Create(ctx context.Context, entry *models.HourlyEntry) error
	GetByID(ctx context.Context, id int) (*models.HourlyEntry, error)
	Update(ctx context.Context, entry *models.HourlyEntry) error
	UpdateStatus(ctx context.Context, id int, status models.EntryStatus) error
	List(ctx context.Context) ([]models.HourlyEntry, error)
	ListByCompetitorAndHour(ctx context.Context, competitorID, hour int) ([]models.HourlyEntry, error)
}

type postgresHourlyEntryRepository struct {
	db *sql.DB
}

func NewPostgresHourlyEntryRepository(db *sql.DB) HourlyEntryRepository {
	return &postgresHourlyEntryRepository{db: db}
}

const hourlyEntryColumns = `id, competitor_id, hour, fish_count, weight, status, judge_id, created_at, updated_at`

func (r *postgresHourlyEntryRepository) Create(ctx context.Context, entry *models.HourlyEntry) error {
	query := `
		INSERT INTO hourly_entries (competitor_id, hour, fish_count, weight, status, judge_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.CompetitorID, entry.Hour, entry.FishCount, entry.Weight, entry.Status, entry.JudgeID,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hourly entry: %w", err)
	}
	return nil
}

func (r *postgresHourlyEntryRepository) scanEntry(rowScanner interface{ Scan(...interface{}) error }) (*models.HourlyEntry, error) {
	var e models.HourlyEntry
	err := rowScanner.Scan(
		&e.ID, &e.CompetitorID, &e.Hour, &e.FishCount, &e.Weight,
		&e.Status, &e.JudgeID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHourlyEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresHourlyEntryRepository) GetByID(ctx context.Context, id int) (*models.HourlyEntry, error) {
	query := `SELECT ` + hourlyEntryColumns + ` FROM hourly_entries WHERE id = $1`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresHourlyEntryRepository) Update(ctx context.Context, entry *models.HourlyEntry) error {
	query := `
		UPDATE hourly_entries SET
			fish_count = $1, weight = $2, status = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query,
		entry.FishCount, entry.Weight, entry.Status, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hourly entry %d: %w", entry.ID, err)
	}
	return checkAffectedRows(result, ErrHourlyEntryNotFound)
}

func (r *postgresHourlyEntryRepository) UpdateStatus(ctx context.Context, id int, status models.EntryStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hourly_entries SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update hourly entry %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrHourlyEntryNotFound)
}

func (r *postgresHourlyEntryRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.HourlyEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.HourlyEntry, 0)
	for rows.Next() {
		e, errScan := r.scanEntry(rows)
		if errScan != nil {
			return nil, errScan
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *postgresHourlyEntryRepository) List(ctx context.Context) ([]models.HourlyEntry, error) {
	return r.list(ctx, `SELECT `+hourlyEntryColumns+` FROM hourly_entries ORDER BY id`)
}

func (r *postgresHourlyEntryRepository) ListByCompetitorAndHour(ctx context.Context, competitorID, hour int) ([]models.HourlyEntry, error) {
	return r.list(ctx,
		`SELECT `+hourlyEntryColumns+` FROM hourly_entries WHERE competitor_id = $1 AND hour = $2 ORDER BY id`,
		competitorID, hour)
}
