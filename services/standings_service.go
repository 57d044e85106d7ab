package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/sarzhanov/fishing-live/live"
	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/scoring"
)

const MessageStandingsUpdated = "STANDINGS_UPDATED"

// Broadcaster is the hub surface the standings service needs.
type Broadcaster interface {
	BroadcastToRoom(room string, message interface{})
}

type StandingsService interface {
	// Subscribe registers the service on the snapshot feed. Returns an
	// unsubscribe func; call it before shutdown.
	Subscribe(feed *live.Feed) func()
	// GetStandings returns current standings, ordered by sector and sector
	// rank. An empty sector returns all sectors grouped; otherwise only the
	// given sector.
	GetStandings(ctx context.Context, sector string) ([]models.Standing, error)
	GetStanding(ctx context.Context, competitorID int) (*models.Standing, error)
	// GeneralRanking returns standings in general-ranking order, unranked
	// competitors last.
	GeneralRanking(ctx context.Context) ([]models.Standing, error)
}

// standingsService owns the current snapshot and recomputes the full
// standings on every feed push. The snapshot is an explicit value, never
// package-level state, so the engine stays independently testable.
type standingsService struct {
	hub    Broadcaster
	logger *slog.Logger

	mu        sync.RWMutex
	snapshot  scoring.Snapshot
	standings []models.Standing
	byID      map[int]models.Standing
}

func NewStandingsService(hub Broadcaster, logger *slog.Logger) StandingsService {
	return &standingsService{
		hub:    hub,
		logger: logger,
		byID:   make(map[int]models.Standing),
	}
}

func (s *standingsService) Subscribe(feed *live.Feed) func() {
	unsubs := []func(){
		feed.Subscribe(live.EntityCompetitors, func(records interface{}) {
			if competitors, ok := records.([]models.Competitor); ok {
				s.apply(func(snap *scoring.Snapshot) { snap.Competitors = competitors })
			}
		}),
		feed.Subscribe(live.EntityHourlyEntries, func(records interface{}) {
			if entries, ok := records.([]models.HourlyEntry); ok {
				s.apply(func(snap *scoring.Snapshot) { snap.HourlyEntries = entries })
			}
		}),
		feed.Subscribe(live.EntityBigCatches, func(records interface{}) {
			if entries, ok := records.([]models.BigCatchEntry); ok {
				s.apply(func(snap *scoring.Snapshot) { snap.BigCatches = entries })
			}
		}),
		feed.Subscribe(live.EntitySettings, func(records interface{}) {
			settings, ok := records.(*models.Settings)
			if !ok {
				return
			}
			s.apply(func(snap *scoring.Snapshot) { snap.Settings = settings })
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// apply mutates the owned snapshot, recomputes and broadcasts. Snapshots are
// full-collection replacements, so a stale in-flight state is simply
// overwritten by the next push. The broadcast happens under the same lock
// as the recompute: deliveries to the hub must keep recompute order, or a
// display could settle on an older snapshot's standings.
func (s *standingsService) apply(mutate func(*scoring.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.snapshot)
	s.standings = scoring.Compute(s.snapshot)
	s.byID = make(map[int]models.Standing, len(s.standings))
	for _, st := range s.standings {
		s.byID[st.CompetitorID] = st
	}

	s.broadcast(s.standings)
}

func (s *standingsService) broadcast(standings []models.Standing) {
	if s.hub == nil {
		return
	}
	for _, sector := range models.Sectors {
		sectorStandings := filterSector(standings, sector)
		s.hub.BroadcastToRoom(sector, live.StandingsMessage{
			Type:    MessageStandingsUpdated,
			Payload: sectorStandings,
			Room:    sector,
		})
	}
	s.hub.BroadcastToRoom(live.RoomGeneral, live.StandingsMessage{
		Type:    MessageStandingsUpdated,
		Payload: generalOrder(standings),
		Room:    live.RoomGeneral,
	})
}

func (s *standingsService) GetStandings(_ context.Context, sector string) ([]models.Standing, error) {
	if sector != "" && !models.IsValidSector(sector) {
		return nil, ErrInvalidSector
	}

	s.mu.RLock()
	standings := s.standings
	s.mu.RUnlock()

	if sector == "" {
		return append([]models.Standing(nil), standings...), nil
	}
	return filterSector(standings, sector), nil
}

func (s *standingsService) GetStanding(_ context.Context, competitorID int) (*models.Standing, error) {
	s.mu.RLock()
	standing, ok := s.byID[competitorID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrStandingNotFound
	}
	return &standing, nil
}

func (s *standingsService) GeneralRanking(_ context.Context) ([]models.Standing, error) {
	s.mu.RLock()
	standings := s.standings
	s.mu.RUnlock()
	return generalOrder(standings), nil
}

func filterSector(standings []models.Standing, sector string) []models.Standing {
	out := make([]models.Standing, 0)
	for _, st := range standings {
		if st.Sector == sector {
			out = append(out, st)
		}
	}
	return out
}

// generalOrder sorts a copy by general rank; competitors sharing the
// unranked sentinel keep their sector/box order after the ranked ones.
func generalOrder(standings []models.Standing) []models.Standing {
	out := append([]models.Standing(nil), standings...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GeneralRank < out[j].GeneralRank
	})
	return out
}
