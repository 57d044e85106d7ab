package scoring

type totals struct {
	FishCount    int
	TotalWeight  float64
	BiggestCatch float64
	Points       float64
}

// aggregate folds all counted entries into per-competitor totals, keyed by
// competitor id. Only entries in a counted status score; draft and submitted
// rows are provisional and excluded. Entries with an out-of-range hour are
// skipped rather than failing the whole computation.
func aggregate(snap Snapshot) map[int]totals {
	hoursTotal := snap.HoursTotal()

	result := make(map[int]totals, len(snap.Competitors))
	known := make(map[int]bool, len(snap.Competitors))
	for _, c := range snap.Competitors {
		known[c.ID] = true
		result[c.ID] = totals{}
	}

	for _, e := range snap.HourlyEntries {
		if !e.Status.Counted() || !known[e.CompetitorID] {
			continue
		}
		if e.Hour < 1 || e.Hour > hoursTotal {
			continue
		}
		if e.FishCount < 0 || e.Weight < 0 {
			continue
		}
		t := result[e.CompetitorID]
		t.FishCount += e.FishCount
		t.TotalWeight += e.Weight
		result[e.CompetitorID] = t
	}

	for _, b := range snap.BigCatches {
		if !b.Status.Counted() || !known[b.CompetitorID] || b.Weight < 0 {
			continue
		}
		t := result[b.CompetitorID]
		// Одна авторитетная запись на участника; при аномалии берём максимум.
		if b.Weight > t.BiggestCatch {
			t.BiggestCatch = b.Weight
		}
		result[b.CompetitorID] = t
	}

	for id, t := range result {
		t.Points = float64(t.FishCount)*PointsPerFish + t.TotalWeight
		result[id] = t
	}
	return result
}
