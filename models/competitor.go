package models

import "time"

type CompetitorStatus string

const (
	CompetitorActive   CompetitorStatus = "active"
	CompetitorInactive CompetitorStatus = "inactive"
)

type Competitor struct {
	ID        int              `json:"id"`
	Sector    string           `json:"sector"`
	Box       int              `json:"box"`
	FullName  string           `json:"full_name"`
	Team      string           `json:"team,omitempty"`
	PhotoKey  *string          `json:"-"`
	PhotoURL  *string          `json:"photo_url,omitempty"`
	Status    CompetitorStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Sectors is the fixed set of beach zones of the competition.
// Box numbers are unique within a sector.
var Sectors = []string{"A", "B", "C", "D", "E", "F"}

func IsValidSector(sector string) bool {
	for _, s := range Sectors {
		if s == sector {
			return true
		}
	}
	return false
}
