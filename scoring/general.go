package scoring

import (
	"sort"

	"github.com/sarzhanov/fishing-live/models"
)

// rankGeneral merges per-sector rankings into a single cross-sector order and
// assigns general ranks in place.
//
// Sectors have independent point scales, so competitors are compared in
// place-groups: for place = 1 upward, the (at most one) competitor holding
// that sector rank in each sector is collected, the group is sorted
// descending by coefficient with biggest catch as tie-break, and appended to
// the running sequence. Strong sector performance therefore beats raw
// coefficient across tiers.
//
// Competitors with a positive coefficient get contiguous 1-based ranks in
// sequence order; competitors with a zero coefficient all share the
// UnrankedGeneralRank sentinel so no false fine-grained order is implied
// among those who caught nothing.
func rankGeneral(sectors map[string][]*models.Standing) {
	sequence := make([]*models.Standing, 0)

	for place := 1; place <= MaxBoxesPerSector; place++ {
		group := make([]*models.Standing, 0, len(models.Sectors))
		for _, sector := range models.Sectors {
			for _, s := range sectors[sector] {
				if s.SectorRank == place {
					group = append(group, s)
				}
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Coefficient != group[j].Coefficient {
				return group[i].Coefficient > group[j].Coefficient
			}
			return group[i].BiggestCatch > group[j].BiggestCatch
		})
		sequence = append(sequence, group...)
	}

	rank := 0
	for _, s := range sequence {
		if s.Coefficient > 0 {
			rank++
			s.GeneralRank = rank
		} else {
			s.GeneralRank = UnrankedGeneralRank
		}
	}
}
