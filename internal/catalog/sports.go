package catalog

import "github.com/khelsetu/assessment-service/internal/models"

var sports = []models.Sport{
	{
		ID:          "cricket",
		Name:        "Cricket",
		Icon:        "🏏",
		Description: "Master batting, bowling, and fielding techniques",
	},
	{
		ID:          "basketball",
		Name:        "Basketball",
		Icon:        "🏀",
		Description: "Develop shooting, dribbling, and court vision",
	},
	{
		ID:          "athletics",
		Name:        "Athletics",
		Icon:        "🏃‍♂️",
		Description: "Sprint, endurance, and track performance",
	},
}
