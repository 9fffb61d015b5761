package models

import "time"

// LeaderboardEntry is a derived ranking row. Rank is 1-based by sorted
// position and is always recomputed after a resort, never trusted from
// storage.
type LeaderboardEntry struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Score     int       `json:"score"`
	Rank      int       `json:"rank"`
	Sport     string    `json:"sport"`
	Timestamp time.Time `json:"timestamp"`

	// IsRival marks entries scoring within a small margin of the viewing
	// user's personal best for the sport.
	IsRival bool `json:"is_rival"`
}
