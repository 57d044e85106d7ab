package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarzhanov/fishing-live/models"
)

func competitor(id int, sector string, box int) models.Competitor {
	return models.Competitor{
		ID:       id,
		Sector:   sector,
		Box:      box,
		FullName: "Competitor",
		Status:   models.CompetitorActive,
	}
}

func hourly(competitorID, hour, fish int, weight float64, status models.EntryStatus) models.HourlyEntry {
	return models.HourlyEntry{
		CompetitorID: competitorID,
		Hour:         hour,
		FishCount:    fish,
		Weight:       weight,
		Status:       status,
	}
}

func byCompetitor(standings []models.Standing) map[int]models.Standing {
	m := make(map[int]models.Standing, len(standings))
	for _, s := range standings {
		m[s.CompetitorID] = s
	}
	return m
}

func TestComputeSectorScenario(t *testing.T) {
	// Sector A with (fish, weight) = (2, 10.0), (0, 0), (5, 3.0).
	snap := Snapshot{
		Competitors: []models.Competitor{
			competitor(1, "A", 1),
			competitor(2, "A", 2),
			competitor(3, "A", 3),
		},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 2, 10.0, models.EntryLockedJudge),
			hourly(3, 1, 5, 3.0, models.EntryLockedAdmin),
		},
	}

	standings := Compute(snap)
	require.Len(t, standings, 3)
	got := byCompetitor(standings)

	assert.Equal(t, 110.0, got[1].Points)
	assert.Equal(t, 0.0, got[2].Points)
	assert.Equal(t, 253.0, got[3].Points)

	// sectorTotalFish = 7
	assert.InDelta(t, 110.0*2/7, got[1].Coefficient, 1e-9)
	assert.Equal(t, 0.0, got[2].Coefficient)
	assert.InDelta(t, 253.0*5/7, got[3].Coefficient, 1e-9)

	assert.Equal(t, 1, got[3].SectorRank)
	assert.Equal(t, 2, got[1].SectorRank)
	assert.Equal(t, 3, got[2].SectorRank)

	assert.Equal(t, 1, got[3].GeneralRank)
	assert.Equal(t, 2, got[1].GeneralRank)
	assert.Equal(t, UnrankedGeneralRank, got[2].GeneralRank)
}

func TestComputeProvisionalStatusesExcluded(t *testing.T) {
	snap := Snapshot{
		Competitors: []models.Competitor{competitor(1, "A", 1)},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 4, 9.5, models.EntryDraft),
			hourly(1, 2, 3, 2.0, models.EntrySubmitted),
		},
		BigCatches: []models.BigCatchEntry{
			{CompetitorID: 1, Weight: 4.2, Status: models.EntryDraft},
		},
	}

	standings := Compute(snap)
	require.Len(t, standings, 1)
	s := standings[0]
	assert.Zero(t, s.FishCount)
	assert.Zero(t, s.TotalWeight)
	assert.Zero(t, s.BiggestCatch)
	assert.Zero(t, s.Points)
	assert.Zero(t, s.Coefficient)
	assert.Equal(t, 1, s.SectorRank)
	assert.Equal(t, UnrankedGeneralRank, s.GeneralRank)
}

func TestComputeCountedStatuses(t *testing.T) {
	counted := []models.EntryStatus{
		models.EntryLockedJudge,
		models.EntryLockedAdmin,
		models.EntryOfflineJudge,
		models.EntryOfflineAdmin,
	}
	for _, status := range counted {
		t.Run(string(status), func(t *testing.T) {
			snap := Snapshot{
				Competitors:   []models.Competitor{competitor(1, "B", 1)},
				HourlyEntries: []models.HourlyEntry{hourly(1, 3, 2, 1.5, status)},
			}
			got := Compute(snap)
			require.Len(t, got, 1)
			assert.Equal(t, 2, got[0].FishCount)
			assert.Equal(t, 2*PointsPerFish+1.5, got[0].Points)
		})
	}
}

func TestComputeBigCatch(t *testing.T) {
	snap := Snapshot{
		Competitors: []models.Competitor{
			competitor(1, "A", 1),
			competitor(2, "A", 2),
		},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 1, 1.0, models.EntryLockedJudge),
			hourly(2, 1, 1, 1.0, models.EntryLockedJudge),
		},
		BigCatches: []models.BigCatchEntry{
			{CompetitorID: 1, Weight: 3.75, Status: models.EntryOfflineAdmin},
		},
	}

	got := byCompetitor(Compute(snap))
	assert.Equal(t, 3.75, got[1].BiggestCatch)
	assert.Zero(t, got[2].BiggestCatch)
}

func TestComputeMalformedRecordsSkipped(t *testing.T) {
	snap := Snapshot{
		Competitors: []models.Competitor{
			competitor(1, "A", 1),
			competitor(2, "", 1),  // missing sector: excluded from ranking
			competitor(3, "X", 2), // unknown sector: excluded from ranking
		},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 2, 1.0, models.EntryLockedJudge),
			hourly(1, 0, 9, 9.0, models.EntryLockedJudge),  // hour below range
			hourly(1, 8, 9, 9.0, models.EntryLockedJudge),  // hour above range
			hourly(1, 2, -1, 1.0, models.EntryLockedJudge), // negative count
			hourly(99, 1, 5, 5.0, models.EntryLockedJudge), // unknown competitor
		},
	}

	standings := Compute(snap)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].CompetitorID)
	assert.Equal(t, 2, standings[0].FishCount)
	assert.Equal(t, 1.0, standings[0].TotalWeight)
}

func TestComputeInactiveCompetitorsExcluded(t *testing.T) {
	inactive := competitor(2, "A", 2)
	inactive.Status = models.CompetitorInactive

	snap := Snapshot{
		Competitors: []models.Competitor{competitor(1, "A", 1), inactive},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 1, 1.0, models.EntryLockedJudge),
			hourly(2, 1, 9, 9.0, models.EntryLockedJudge),
		},
	}

	standings := Compute(snap)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].CompetitorID)
	// The deactivated competitor no longer inflates sectorTotalFish.
	assert.InDelta(t, standings[0].Points*1/1, standings[0].Coefficient, 1e-9)
}

func TestComputeSectorRanksContiguous(t *testing.T) {
	snap := Snapshot{}
	for i := 1; i <= 12; i++ {
		sector := models.Sectors[i%3] // sectors of 4 competitors each
		snap.Competitors = append(snap.Competitors, competitor(i, sector, (i/3)+1))
		snap.HourlyEntries = append(snap.HourlyEntries,
			hourly(i, 1, i%5, float64(i), models.EntryLockedJudge))
	}

	standings := Compute(snap)
	require.Len(t, standings, 12)

	perSector := make(map[string][]int)
	for _, s := range standings {
		perSector[s.Sector] = append(perSector[s.Sector], s.SectorRank)
	}
	for sector, ranks := range perSector {
		seen := make(map[int]bool)
		for _, r := range ranks {
			assert.GreaterOrEqual(t, r, 1, "sector %s", sector)
			assert.LessOrEqual(t, r, len(ranks), "sector %s", sector)
			assert.False(t, seen[r], "duplicate rank %d in sector %s", r, sector)
			seen[r] = true
		}
	}
}

func TestComputeGeneralRanksContiguous(t *testing.T) {
	snap := Snapshot{}
	id := 0
	for _, sector := range []string{"A", "B", "C"} {
		for box := 1; box <= 4; box++ {
			id++
			snap.Competitors = append(snap.Competitors, competitor(id, sector, box))
			// Boxes 4 catch nothing and must end up unranked.
			if box < 4 {
				snap.HourlyEntries = append(snap.HourlyEntries,
					hourly(id, 1, box, float64(box)*1.1, models.EntryLockedJudge))
			}
		}
	}

	standings := Compute(snap)
	require.Len(t, standings, 12)

	var ranked []int
	for _, s := range standings {
		if s.Coefficient > 0 {
			ranked = append(ranked, s.GeneralRank)
		} else {
			assert.Equal(t, UnrankedGeneralRank, s.GeneralRank)
		}
	}
	require.Len(t, ranked, 9)
	seen := make(map[int]bool)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r, 1)
		assert.LessOrEqual(t, r, len(ranked))
		assert.False(t, seen[r], "duplicate general rank %d", r)
		seen[r] = true
	}
}

func TestComputePlaceGroupOrdering(t *testing.T) {
	// One competitor per sector, so all three share sectorRank 1 and form a
	// single place-group ordered by coefficient.
	snap := Snapshot{
		Competitors: []models.Competitor{
			competitor(1, "A", 1),
			competitor(2, "B", 1),
			competitor(3, "C", 1),
		},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 2, 5.0, models.EntryLockedJudge),
			hourly(2, 1, 4, 1.0, models.EntryLockedJudge),
			hourly(3, 1, 1, 30.0, models.EntryLockedJudge),
		},
	}

	got := byCompetitor(Compute(snap))
	// Single-competitor sectors: coefficient == points * fish / fish == points.
	assert.Greater(t, got[2].Coefficient, got[1].Coefficient)
	assert.Greater(t, got[1].Coefficient, got[3].Coefficient)
	assert.Equal(t, 1, got[2].GeneralRank)
	assert.Equal(t, 2, got[1].GeneralRank)
	assert.Equal(t, 3, got[3].GeneralRank)
}

func TestComputePlaceGroupBiggestCatchTieBreak(t *testing.T) {
	// Identical catches in both sectors leave identical coefficients at
	// sectorRank 1; the big catch must break the tie.
	snap := Snapshot{
		Competitors: []models.Competitor{
			competitor(1, "A", 1),
			competitor(2, "B", 1),
		},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 1, 3, 4.0, models.EntryLockedJudge),
			hourly(2, 1, 3, 4.0, models.EntryLockedJudge),
		},
		BigCatches: []models.BigCatchEntry{
			{CompetitorID: 1, Weight: 1.2, Status: models.EntryLockedJudge},
			{CompetitorID: 2, Weight: 2.8, Status: models.EntryLockedJudge},
		},
	}

	got := byCompetitor(Compute(snap))
	require.Equal(t, got[1].Coefficient, got[2].Coefficient)
	assert.Equal(t, 1, got[2].GeneralRank)
	assert.Equal(t, 2, got[1].GeneralRank)
}

func TestComputePlaceGroupOfOnePassesThrough(t *testing.T) {
	// Only sector A has a fifth competitor, so the place-group at rank 5 has
	// size one and needs no tie-break.
	snap := Snapshot{}
	for box := 1; box <= 5; box++ {
		snap.Competitors = append(snap.Competitors, competitor(box, "A", box))
		snap.HourlyEntries = append(snap.HourlyEntries,
			hourly(box, 1, 6-box, 1.0, models.EntryLockedJudge))
	}
	for box := 1; box <= 4; box++ {
		snap.Competitors = append(snap.Competitors, competitor(10+box, "B", box))
		snap.HourlyEntries = append(snap.HourlyEntries,
			hourly(10+box, 1, 6-box, 2.0, models.EntryLockedJudge))
	}

	got := byCompetitor(Compute(snap))
	assert.Equal(t, 5, got[5].SectorRank)
	assert.Equal(t, 9, got[5].GeneralRank)
}

func TestComputeIdempotent(t *testing.T) {
	snap := Snapshot{}
	for i := 1; i <= 18; i++ {
		snap.Competitors = append(snap.Competitors,
			competitor(i, models.Sectors[i%6], (i/6)+1))
		snap.HourlyEntries = append(snap.HourlyEntries,
			hourly(i, (i%7)+1, i%4, float64(i)*0.3, models.EntryOfflineJudge))
	}

	first := Compute(snap)
	second := Compute(snap)
	assert.Equal(t, first, second)
}

func TestComputeEmptySnapshot(t *testing.T) {
	assert.Empty(t, Compute(Snapshot{}))
}

func TestComputeHoursTotalFromSettings(t *testing.T) {
	snap := Snapshot{
		Competitors: []models.Competitor{competitor(1, "A", 1)},
		HourlyEntries: []models.HourlyEntry{
			hourly(1, 5, 3, 1.0, models.EntryLockedJudge),
		},
		Settings: &models.Settings{HoursTotal: 4},
	}

	// Hour 5 is out of range for a 4-hour competition.
	standings := Compute(snap)
	require.Len(t, standings, 1)
	assert.Zero(t, standings[0].FishCount)
}
