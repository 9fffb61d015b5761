package catalog

import (
	"time"

	"github.com/khelsetu/assessment-service/internal/models"
)

// DailyChallenges returns the common daily quest plus the sport-specific
// one when the sport has any. Expiry is end of the current local day.
func DailyChallenges(sportID string, now time.Time) []models.Quest {
	expires := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	quests := []models.Quest{
		{
			ID:          "daily-login",
			Type:        models.QuestDaily,
			Title:       "Train Today",
			Description: "Complete one assessment session.",
			Target:      1,
			XPReward:    50,
			CoinReward:  10,
			ExpiresAt:   expires,
		},
	}

	switch sportID {
	case "cricket":
		quests = append(quests, models.Quest{
			ID:          "daily-cricket-drive",
			Type:        models.QuestDaily,
			Title:       "Cover Drive Practice",
			Description: "Score over 70 in the Batting Assessment.",
			Target:      70,
			XPReward:    75,
			CoinReward:  20,
			ExpiresAt:   expires,
		})
	case "athletics":
		quests = append(quests, models.Quest{
			ID:          "daily-athletics-sprint",
			Type:        models.QuestDaily,
			Title:       "Speed Burst",
			Description: "Complete the 40m Sprint test.",
			Target:      1,
			XPReward:    60,
			CoinReward:  15,
			ExpiresAt:   expires,
		})
	}

	return quests
}
