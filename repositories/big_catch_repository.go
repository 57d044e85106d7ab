package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sarzhanov/fishing-live/models"
)

var ErrBigCatchNotFound = errors.New("big catch entry not found")

type BigCatchRepository interface {
	Upsert(ctx context.Context, entry *models.BigCatchEntry) error
	GetByCompetitor(ctx context.Context, competitorID int) (*models.BigCatchEntry, error)
	UpdateStatus(ctx context.Context, id int, status models.EntryStatus) error
	List(ctx context.Context) ([]models.BigCatchEntry, error)
}

type postgresBigCatchRepository struct {
	db *sql.DB
}

func NewPostgresBigCatchRepository(db *sql.DB) BigCatchRepository {
	return &postgresBigCatchRepository{db: db}
}

const bigCatchColumns = `id, competitor_id, weight, status, judge_id, created_at, updated_at`

// Upsert keeps at most one authoritative big-catch row per competitor.
func (r *postgresBigCatchRepository) Upsert(ctx context.Context, entry *models.BigCatchEntry) error {
	query := `
		INSERT INTO big_catch_entries (competitor_id, weight, status, judge_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (competitor_id) DO UPDATE SET
			weight = EXCLUDED.weight,
			status = EXCLUDED.status,
			judge_id = EXCLUDED.judge_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.CompetitorID, entry.Weight, entry.Status, entry.JudgeID,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert big catch for competitor %d: %w", entry.CompetitorID, err)
	}
	return nil
}

func (r *postgresBigCatchRepository) scanEntry(rowScanner interface{ Scan(...interface{}) error }) (*models.BigCatchEntry, error) {
	var e models.BigCatchEntry
	err := rowScanner.Scan(
		&e.ID, &e.CompetitorID, &e.Weight, &e.Status, &e.JudgeID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBigCatchNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresBigCatchRepository) GetByCompetitor(ctx context.Context, competitorID int) (*models.BigCatchEntry, error) {
	query := `SELECT ` + bigCatchColumns + ` FROM big_catch_entries WHERE competitor_id = $1`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, competitorID))
}

func (r *postgresBigCatchRepository) UpdateStatus(ctx context.Context, id int, status models.EntryStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE big_catch_entries SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update big catch %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrBigCatchNotFound)
}

func (r *postgresBigCatchRepository) List(ctx context.Context) ([]models.BigCatchEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bigCatchColumns+` FROM big_catch_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.BigCatchEntry, 0)
	for rows.Next() {
		e, errScan := r.scanEntry(rows)
		if errScan != nil {
			return nil, errScan
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
