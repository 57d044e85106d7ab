package models

// Standing - вычисляемый результат участника. Никогда не сохраняется в БД,
// полностью пересчитывается из текущего снимка записей.
type Standing struct {
	CompetitorID int     `json:"competitor_id"`
	Sector       string  `json:"sector"`
	Box          int     `json:"box"`
	FullName     string  `json:"full_name"`
	Team         string  `json:"team,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	FishCount    int     `json:"fish_count"`
	TotalWeight  float64 `json:"total_weight"`
	BiggestCatch float64 `json:"biggest_catch"`
	Points       float64 `json:"points"`
	Coefficient  float64 `json:"coefficient"`
	SectorRank   int     `json:"sector_rank"`
	GeneralRank  int     `json:"general_rank"`
}
