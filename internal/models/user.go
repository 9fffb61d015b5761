package models

import "time"

// CurrentSchemaVersion is the version written with every profile. Stored
// profiles with an older version are migrated on read; newer versions are
// rejected.
const CurrentSchemaVersion = 2

// UserProfile is the durable per-athlete record. Exactly one exists per
// process; it is created during onboarding and mutated by every confirmed
// attempt.
//
// Invariant: Level is always derivable as floor(XP/100)+1. The store
// re-normalizes Level on every write so the two can never drift.
type UserProfile struct {
	ID               string         `json:"id" validate:"required"`
	Name             string         `json:"name" validate:"required,min=1,max=100"`
	AbhaID           string         `json:"abha_id,omitempty"`
	Avatar           string         `json:"avatar"`
	PrimarySport     string         `json:"primary_sport" validate:"required"`
	SelectedSports   []string       `json:"selected_sports" validate:"required,min=1"`
	Level            int            `json:"level" validate:"min=1"`
	XP               int            `json:"xp" validate:"gte=0"`
	Coins            int            `json:"coins" validate:"gte=0"`
	Badges           []string       `json:"badges"`
	StreakDays       int            `json:"streak_days" validate:"gte=0"`
	LastActiveDate   time.Time      `json:"last_active_date"`
	PersonalBests    map[string]int `json:"personal_bests"` // test id -> best score
	TotalAssessments int            `json:"total_assessments" validate:"gte=0"`
	QuestsCompleted  int            `json:"quests_completed" validate:"gte=0"`
	CreatedAt        time.Time      `json:"created_at"`
	SchemaVersion    int            `json:"schema_version" validate:"min=1"`
}

// LevelForXP derives the level implied by an XP total.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// HasBadge reports whether the badge id is already unlocked.
func (u *UserProfile) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}
