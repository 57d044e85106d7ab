package scoring

import "github.com/sarzhanov/fishing-live/models"

// Бизнес-константы подсчёта очков. Зафиксированы регламентом соревнования.
const (
	// PointsPerFish is the fixed multiplier of the scoring formula:
	// points = fishCount*PointsPerFish + totalWeight.
	PointsPerFish = 50.0

	// UnrankedGeneralRank is the sentinel general rank shared by every
	// competitor with a zero coefficient. They are unranked, not tied at
	// the bottom, and the value must not depend on the roster size.
	UnrankedGeneralRank = 120

	// MaxBoxesPerSector bounds the place-group pass of the general
	// ranking. Sectors with fewer competitors simply produce smaller or
	// empty groups at the higher places.
	MaxBoxesPerSector = 20

	// DefaultHoursTotal is used when the settings record is missing.
	DefaultHoursTotal = 7
)

// Snapshot is the full current state of the store, delivered by the
// subscription feed. Compute is a pure function of it - the engine keeps
// no ranking state between snapshots.
type Snapshot struct {
	Competitors   []models.Competitor
	HourlyEntries []models.HourlyEntry
	BigCatches    []models.BigCatchEntry
	Settings      *models.Settings
}

// HoursTotal returns the configured number of hourly rounds, falling back
// to the default when settings have not arrived yet.
func (s Snapshot) HoursTotal() int {
	if s.Settings != nil && s.Settings.HoursTotal > 0 {
		return s.Settings.HoursTotal
	}
	return DefaultHoursTotal
}
