package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarzhanov/fishing-live/live"
	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/scoring"
)

type mockBroadcaster struct {
	mu       sync.Mutex
	messages map[string][]interface{}
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{messages: make(map[string][]interface{})}
}

func (m *mockBroadcaster) BroadcastToRoom(room string, message interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[room] = append(m.messages[room], message)
}

func (m *mockBroadcaster) lastInRoom(room string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.messages[room]
	if len(msgs) == 0 {
		return nil, false
	}
	return msgs[len(msgs)-1], true
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func publishFixture(feed *live.Feed) {
	feed.Publish(live.EntityCompetitors, []models.Competitor{
		{ID: 1, Sector: "A", Box: 1, FullName: "One", Status: models.CompetitorActive},
		{ID: 2, Sector: "A", Box: 2, FullName: "Two", Status: models.CompetitorActive},
		{ID: 3, Sector: "B", Box: 1, FullName: "Three", Status: models.CompetitorActive},
	})
	feed.Publish(live.EntityHourlyEntries, []models.HourlyEntry{
		{CompetitorID: 1, Hour: 1, FishCount: 2, Weight: 10.0, Status: models.EntryLockedJudge},
		{CompetitorID: 3, Hour: 2, FishCount: 5, Weight: 3.0, Status: models.EntryOfflineAdmin},
	})
	feed.Publish(live.EntityBigCatches, []models.BigCatchEntry{
		{CompetitorID: 1, Weight: 4.0, Status: models.EntryLockedAdmin},
	})
}

func TestStandingsServiceRecomputesOnPush(t *testing.T) {
	feed := live.NewFeed()
	svc := NewStandingsService(newMockBroadcaster(), testLogger())
	defer svc.Subscribe(feed)()

	publishFixture(feed)

	standing, err := svc.GetStanding(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, standing.FishCount)
	assert.Equal(t, 110.0, standing.Points)
	assert.Equal(t, 4.0, standing.BiggestCatch)
	assert.Equal(t, 1, standing.SectorRank)

	// A corrected snapshot fully replaces the previous one.
	feed.Publish(live.EntityHourlyEntries, []models.HourlyEntry{
		{CompetitorID: 1, Hour: 1, FishCount: 1, Weight: 2.0, Status: models.EntryLockedJudge},
	})
	standing, err = svc.GetStanding(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, standing.FishCount)
	assert.Equal(t, 52.0, standing.Points)
}

func TestStandingsServiceSectorFilter(t *testing.T) {
	feed := live.NewFeed()
	svc := NewStandingsService(newMockBroadcaster(), testLogger())
	defer svc.Subscribe(feed)()
	publishFixture(feed)

	all, err := svc.GetStandings(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sectorA, err := svc.GetStandings(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, sectorA, 2)
	for _, s := range sectorA {
		assert.Equal(t, "A", s.Sector)
	}

	_, err = svc.GetStandings(context.Background(), "Z")
	assert.ErrorIs(t, err, ErrInvalidSector)
}

func TestStandingsServiceUnknownCompetitor(t *testing.T) {
	svc := NewStandingsService(newMockBroadcaster(), testLogger())
	_, err := svc.GetStanding(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStandingNotFound)
}

func TestStandingsServiceBroadcasts(t *testing.T) {
	feed := live.NewFeed()
	hub := newMockBroadcaster()
	svc := NewStandingsService(hub, testLogger())
	defer svc.Subscribe(feed)()

	publishFixture(feed)

	msg, ok := hub.lastInRoom("A")
	require.True(t, ok)
	envelope, ok := msg.(live.StandingsMessage)
	require.True(t, ok)
	assert.Equal(t, MessageStandingsUpdated, envelope.Type)
	standings, ok := envelope.Payload.([]models.Standing)
	require.True(t, ok)
	assert.Len(t, standings, 2)

	msg, ok = hub.lastInRoom(live.RoomGeneral)
	require.True(t, ok)
	envelope = msg.(live.StandingsMessage)
	general := envelope.Payload.([]models.Standing)
	require.Len(t, general, 3)
	// General order: ranked first, unranked sentinel last.
	assert.Equal(t, 1, general[0].GeneralRank)
	assert.Equal(t, scoring.UnrankedGeneralRank, general[2].GeneralRank)
}

func TestStandingsServiceGeneralRanking(t *testing.T) {
	feed := live.NewFeed()
	svc := NewStandingsService(newMockBroadcaster(), testLogger())
	defer svc.Subscribe(feed)()
	publishFixture(feed)

	general, err := svc.GeneralRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, general, 3)
	assert.Equal(t, 3, general[0].CompetitorID) // coefficient 253*5/5
	assert.Equal(t, 1, general[1].CompetitorID)
	assert.Equal(t, 2, general[2].CompetitorID)
	assert.Equal(t, scoring.UnrankedGeneralRank, general[2].GeneralRank)
}

func TestStandingsServiceLastBroadcastMatchesSettledState(t *testing.T) {
	feed := live.NewFeed()
	hub := newMockBroadcaster()
	svc := NewStandingsService(hub, testLogger())
	defer svc.Subscribe(feed)()

	feed.Publish(live.EntityCompetitors, []models.Competitor{
		{ID: 1, Sector: "A", Box: 1, FullName: "One", Status: models.CompetitorActive},
	})

	// Судьи пишут параллельно: после того как поток уляжется, последняя
	// рассылка должна совпадать с текущим состоянием, а не с устаревшим
	// промежуточным пересчётом.
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(fish int) {
			defer wg.Done()
			feed.Publish(live.EntityHourlyEntries, []models.HourlyEntry{
				{CompetitorID: 1, Hour: 1, FishCount: fish, Weight: 1.0, Status: models.EntryLockedJudge},
			})
		}(i)
	}
	wg.Wait()

	settled, err := svc.GetStanding(context.Background(), 1)
	require.NoError(t, err)

	msg, ok := hub.lastInRoom(live.RoomGeneral)
	require.True(t, ok)
	general := msg.(live.StandingsMessage).Payload.([]models.Standing)
	require.Len(t, general, 1)
	assert.Equal(t, settled.FishCount, general[0].FishCount)
	assert.Equal(t, settled.Points, general[0].Points)
}

func TestStandingsServiceSettingsChangeHourRange(t *testing.T) {
	feed := live.NewFeed()
	svc := NewStandingsService(newMockBroadcaster(), testLogger())
	defer svc.Subscribe(feed)()
	publishFixture(feed)

	// Shrinking the competition to one round drops competitor 3's hour-2
	// entry from the totals.
	feed.Publish(live.EntitySettings, &models.Settings{HoursTotal: 1})

	standing, err := svc.GetStanding(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, standing.FishCount)
	assert.Zero(t, standing.Points)
}
