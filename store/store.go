// Package store implements the entry store boundary: durable records in
// Postgres plus the push-based snapshot feed the ranking engine consumes.
package store

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sarzhanov/fishing-live/live"
	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/repositories"
)

// Store publishes the full current collection for an entity through the feed
// after every write. Subscribers never receive deltas; they recompute from
// the snapshot. A reload failure after a write is logged and swallowed so a
// transient read problem cannot take the last good snapshot off the screens.
type Store struct {
	competitorRepo repositories.CompetitorRepository
	hourlyRepo     repositories.HourlyEntryRepository
	bigCatchRepo   repositories.BigCatchRepository
	settingsRepo   repositories.SettingsRepository
	feed           *live.Feed
	logger         *slog.Logger
}

func New(
	competitorRepo repositories.CompetitorRepository,
	hourlyRepo repositories.HourlyEntryRepository,
	bigCatchRepo repositories.BigCatchRepository,
	settingsRepo repositories.SettingsRepository,
	feed *live.Feed,
	logger *slog.Logger,
) *Store {
	return &Store{
		competitorRepo: competitorRepo,
		hourlyRepo:     hourlyRepo,
		bigCatchRepo:   bigCatchRepo,
		settingsRepo:   settingsRepo,
		feed:           feed,
		logger:         logger,
	}
}

func (s *Store) Feed() *live.Feed {
	return s.feed
}

// LoadAll loads the four collections concurrently and publishes the initial
// snapshots. Called once at startup after subscribers are registered.
func (s *Store) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.NotifyCompetitors(ctx) })
	g.Go(func() error { return s.NotifyHourlyEntries(ctx) })
	g.Go(func() error { return s.NotifyBigCatches(ctx) })
	g.Go(func() error { return s.NotifySettings(ctx) })
	return g.Wait()
}

func (s *Store) NotifyCompetitors(ctx context.Context) error {
	competitors, err := s.competitorRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to reload competitors", slog.Any("error", err))
		return err
	}
	s.feed.Publish(live.EntityCompetitors, competitors)
	return nil
}

func (s *Store) NotifyHourlyEntries(ctx context.Context) error {
	entries, err := s.hourlyRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to reload hourly entries", slog.Any("error", err))
		return err
	}
	s.feed.Publish(live.EntityHourlyEntries, entries)
	return nil
}

func (s *Store) NotifyBigCatches(ctx context.Context) error {
	entries, err := s.bigCatchRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to reload big catches", slog.Any("error", err))
		return err
	}
	s.feed.Publish(live.EntityBigCatches, entries)
	return nil
}

func (s *Store) NotifySettings(ctx context.Context) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			// No settings row yet: subscribers fall back to defaults.
			s.feed.Publish(live.EntitySettings, (*models.Settings)(nil))
			return nil
		}
		s.logger.Error("failed to reload settings", slog.Any("error", err))
		return err
	}
	s.feed.Publish(live.EntitySettings, settings)
	return nil
}
