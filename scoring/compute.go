package scoring

import (
	"sort"

	"github.com/sarzhanov/fishing-live/models"
)

// Compute derives the full standings from one snapshot: aggregation, sector
// ranking, then general ranking. Deterministic and side-effect free; the
// result is ordered by sector and sector rank.
//
// Inactive competitors and competitors with an unknown sector are excluded.
// A competitor with zero counted entries still receives an all-zero standing
// and participates in ranking.
func Compute(snap Snapshot) []models.Standing {
	agg := aggregate(snap)

	sectors := make(map[string][]*models.Standing, len(models.Sectors))
	for _, c := range snap.Competitors {
		if c.Status != models.CompetitorActive || !models.IsValidSector(c.Sector) {
			continue
		}
		t := agg[c.ID]
		sectors[c.Sector] = append(sectors[c.Sector], &models.Standing{
			CompetitorID: c.ID,
			Sector:       c.Sector,
			Box:          c.Box,
			FullName:     c.FullName,
			Team:         c.Team,
			PhotoURL:     c.PhotoURL,
			FishCount:    t.FishCount,
			TotalWeight:  t.TotalWeight,
			BiggestCatch: t.BiggestCatch,
			Points:       t.Points,
		})
	}

	// Snapshot arrays carry no order guarantee, so fix the encounter order
	// by box number before the stable rank sorts. Box numbers are unique
	// within a sector, which makes the whole computation idempotent.
	for _, standings := range sectors {
		sort.SliceStable(standings, func(i, j int) bool {
			return standings[i].Box < standings[j].Box
		})
		rankSector(standings)
	}
	rankGeneral(sectors)

	out := make([]models.Standing, 0, len(snap.Competitors))
	for _, sector := range models.Sectors {
		for _, s := range sectors[sector] {
			out = append(out, *s)
		}
	}
	return out
}
