package models

import "time"

// EntryStatus is the lifecycle shared by hourly entries and big catches.
// Судья создаёт draft, подтверждает (submitted), затем запись блокируется
// судьёй или админом — онлайн или при офлайн-сверке.
type EntryStatus string

const (
	EntryDraft        EntryStatus = "draft"
	EntrySubmitted    EntryStatus = "submitted"
	EntryLockedJudge  EntryStatus = "locked_judge"
	EntryLockedAdmin  EntryStatus = "locked_admin"
	EntryOfflineJudge EntryStatus = "offline_judge"
	EntryOfflineAdmin EntryStatus = "offline_admin"
)

// Counted reports whether an entry in this status contributes to scoring.
// Only the four locked/offline statuses count; draft and submitted are
// provisional.
func (s EntryStatus) Counted() bool {
	switch s {
	case EntryLockedJudge, EntryLockedAdmin, EntryOfflineJudge, EntryOfflineAdmin:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from this status.
func (s EntryStatus) Terminal() bool {
	return s.Counted()
}

// CanTransitionTo validates the draft → submitted → locked/offline lifecycle.
// Admin may lock from either provisional status.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case EntryDraft:
		return next == EntrySubmitted || next == EntryLockedAdmin || next == EntryOfflineAdmin
	case EntrySubmitted:
		return next.Counted()
	}
	return false
}

// HourlyEntry is a judged catch tally for one competitor for one hour slot.
// Corrections create new rows; only counted rows score.
type HourlyEntry struct {
	ID           int         `json:"id"`
	CompetitorID int         `json:"competitor_id"`
	Hour         int         `json:"hour"`
	FishCount    int         `json:"fish_count"`
	Weight       float64     `json:"weight"`
	Status       EntryStatus `json:"status"`
	JudgeID      int         `json:"judge_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BigCatchEntry holds the single largest individual catch weight for a
// competitor. At most one authoritative row per competitor.
type BigCatchEntry struct {
	ID           int         `json:"id"`
	CompetitorID int         `json:"competitor_id"`
	Weight       float64     `json:"weight"`
	Status       EntryStatus `json:"status"`
	JudgeID      int         `json:"judge_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
