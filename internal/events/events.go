package events

import "time"

type EventType string

const (
	EventAttemptConfirmed EventType = "attempt.confirmed"
	EventLevelUp          EventType = "profile.level_up"
	EventBadgeUnlocked    EventType = "profile.badge_unlocked"
	EventPersonalBest     EventType = "profile.personal_best"
)

const (
	eventSource  = "assessment-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every gamification side effect of a
// confirmed attempt.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AttemptConfirmedEvent is emitted once per confirmed attempt.
type AttemptConfirmedEvent struct {
	AttemptID string `json:"attempt_id"`
	TestID    string `json:"test_id"`
	UserID    string `json:"user_id"`
	Score     int    `json:"score"`
	XPEarned  int    `json:"xp_earned"`
	Coins     int    `json:"coins_earned"`
}

type LevelUpEvent struct {
	UserID    string `json:"user_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	CoinBonus int    `json:"coin_bonus"`
}

type BadgeUnlockedEvent struct {
	UserID  string `json:"user_id"`
	BadgeID string `json:"badge_id"`
}

type PersonalBestEvent struct {
	UserID   string `json:"user_id"`
	TestID   string `json:"test_id"`
	OldScore int    `json:"old_score"`
	NewScore int    `json:"new_score"`
}
