package models

import "time"

type QuestType string

const (
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
)

// Quest is a daily/weekly challenge shown alongside assessments.
type Quest struct {
	ID          string    `json:"id"`
	Type        QuestType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	XPReward    int       `json:"xp_reward"`
	CoinReward  int       `json:"coin_reward"`
	IsCompleted bool      `json:"is_completed"`
	ExpiresAt   time.Time `json:"expires_at"`
}
