package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sarzhanov/fishing-live/models"
)

var (
	ErrCompetitorNotFound    = errors.New("competitor not found")
	ErrCompetitorBoxConflict = errors.New("box number already taken in this sector")
)

type CompetitorRepository interface {
	Create(ctx context.Context, competitor *models.Competitor) error
	GetByID(ctx context.Context, id int) (*models.Competitor, error)
	Update(ctx context.Context, competitor *models.Competitor) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Competitor, error)
	HasEntries(ctx context.Context, id int) (bool, error)
}

type postgresCompetitorRepository struct {
	db *sql.DB
}

func NewPostgresCompetitorRepository(db *sql.DB) CompetitorRepository {
	return &postgresCompetitorRepository{db: db}
}

func (r *postgresCompetitorRepository) Create(ctx context.Context, competitor *models.Competitor) error {
	query := `
		INSERT INTO competitors (sector, box, full_name, team, photo_key, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		competitor.Sector,
		competitor.Box,
		competitor.FullName,
		competitor.Team,
		competitor.PhotoKey,
		competitor.Status,
	).Scan(&competitor.ID, &competitor.CreatedAt, &competitor.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "competitors_sector_box_key" {
				return ErrCompetitorBoxConflict
			}
		}
		return fmt.Errorf("failed to create competitor: %w", err)
	}
	return nil
}

func (r *postgresCompetitorRepository) scanCompetitor(rowScanner interface{ Scan(...interface{}) error }) (*models.Competitor, error) {
	var c models.Competitor
	var team sql.NullString
	err := rowScanner.Scan(
		&c.ID, &c.Sector, &c.Box, &c.FullName, &team,
		&c.PhotoKey, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitorNotFound
		}
		return nil, err
	}
	c.Team = team.String
	return &c, nil
}

const competitorColumns = `id, sector, box, full_name, team, photo_key, status, created_at, updated_at`

func (r *postgresCompetitorRepository) GetByID(ctx context.Context, id int) (*models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE id = $1`
	return r.scanCompetitor(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitorRepository) Update(ctx context.Context, competitor *models.Competitor) error {
	query := `
		UPDATE competitors SET
			sector = $1, box = $2, full_name = $3, team = $4, photo_key = $5,
			status = $6, updated_at = NOW()
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		competitor.Sector, competitor.Box, competitor.FullName, competitor.Team,
		competitor.PhotoKey, competitor.Status, competitor.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrCompetitorBoxConflict
		}
		return fmt.Errorf("failed to update competitor %d: %w", competitor.ID, err)
	}
	return checkAffectedRows(result, ErrCompetitorNotFound)
}

func (r *postgresCompetitorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete competitor %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrCompetitorNotFound)
}

func (r *postgresCompetitorRepository) List(ctx context.Context) ([]models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors ORDER BY sector, box`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitors := make([]models.Competitor, 0)
	for rows.Next() {
		c, errScan := r.scanCompetitor(rows)
		if errScan != nil {
			return nil, errScan
		}
		competitors = append(competitors, *c)
	}
	return competitors, rows.Err()
}

// HasEntries reports whether any entry references the competitor. Referenced
// competitors are deactivated instead of deleted.
func (r *postgresCompetitorRepository) HasEntries(ctx context.Context, id int) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM hourly_entries WHERE competitor_id = $1)
		    OR EXISTS (SELECT 1 FROM big_catch_entries WHERE competitor_id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
