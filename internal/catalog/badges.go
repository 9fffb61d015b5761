package catalog

import "github.com/khelsetu/assessment-service/internal/models"

var badges = []models.Badge{
	{
		ID:          "first-assessment",
		Name:        "First Step",
		Description: "Complete your first assessment",
		Icon:        "🎯",
		Rarity:      models.RarityCommon,
		Requirement: "Complete 1 assessment",
	},
	{
		ID:          "week-streak",
		Name:        "Dedicated Athlete",
		Description: "Practice for 7 consecutive days",
		Icon:        "🔥",
		Rarity:      models.RarityRare,
		Requirement: "Login for 7 consecutive days",
	},
	{
		ID:          "cricket-master",
		Name:        "Cricket Legend",
		Description: "Score 90+ in all cricket assessments",
		Icon:        "🏏",
		Rarity:      models.RarityEpic,
		Requirement: "Score 90+ in all cricket tests",
	},
	{
		ID:          "multi-sport",
		Name:        "All-Rounder",
		Description: "Complete assessments in 3 different sports",
		Icon:        "🌟",
		Rarity:      models.RarityEpic,
		Requirement: "Complete tests in 3 sports",
	},
	{
		ID:          "leaderboard-top10",
		Name:        "Rising Star",
		Description: "Reach top 10 in any sport leaderboard",
		Icon:        "⭐",
		Rarity:      models.RarityLegendary,
		Requirement: "Reach top 10 in leaderboard",
	},
}
