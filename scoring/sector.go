package scoring

import (
	"sort"

	"github.com/sarzhanov/fishing-live/models"
)

// rankSector computes the coefficient and the 1-based sector rank for one
// sector's standings, in place. The coefficient rewards competitors who both
// score well and contribute materially to the sector's catch volume:
//
//	coefficient = points * fishCount / sectorTotalFish
//
// An empty sector (sectorTotalFish == 0) yields zero coefficients for all.
// The sort by points must be stable so that a recomputation from the same
// snapshot is reproducible.
func rankSector(standings []*models.Standing) {
	sectorTotalFish := 0
	for _, s := range standings {
		sectorTotalFish += s.FishCount
	}

	for _, s := range standings {
		if sectorTotalFish > 0 {
			s.Coefficient = s.Points * float64(s.FishCount) / float64(sectorTotalFish)
		} else {
			s.Coefficient = 0
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	for i, s := range standings {
		s.SectorRank = i + 1
	}
}
