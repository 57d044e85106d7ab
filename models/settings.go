package models

import "time"

type CompetitionStatus string

const (
	CompetitionSetup    CompetitionStatus = "setup"
	CompetitionRunning  CompetitionStatus = "running"
	CompetitionPaused   CompetitionStatus = "paused"
	CompetitionFinished CompetitionStatus = "finished"
)

// Settings is the single competition configuration row.
type Settings struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	HoursTotal   int               `json:"hours_total"`
	CurrentHour  int               `json:"current_hour"`
	Status       CompetitionStatus `json:"status"`
	CountdownEnd *time.Time        `json:"countdown_end,omitempty"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
