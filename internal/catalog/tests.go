package catalog

import "github.com/khelsetu/assessment-service/internal/models"

var allTests = []models.TestSpec{
	{
		ID:          "cricket-batting",
		Name:        "Batting Assessment",
		Description: "Analyze your batting technique, timing, and shot placement",
		SportID:     "cricket",
		Difficulty:  models.DifficultyIntermediate,
		Duration:    10,
		Instructions: []string{
			"Set up camera 3 meters away at waist height",
			"Take your batting stance facing the camera",
			"Perform 5 straight drives with proper technique",
		},
		Metrics: []models.MetricDef{
			{Key: "technique_score", Name: "Technique Score", Unit: "points", Min: 0, Max: 100, Required: true},
			{Key: "shot_accuracy", Name: "Shot Accuracy", Unit: "%", Min: 0, Max: 100, Required: true},
		},
		Scoring: models.ScoringRule{
			Function:   models.ScoringLinearAsc,
			Thresholds: models.ScoreThresholds{Pass: 60, Good: 75, Excellent: 90},
			XPPerPoint: 1.2,
			CoinBonus:  15,
		},
		BadgeUnlock: "first-assessment",
	},
	{
		ID:          "athletics-sprint-40m",
		Name:        "40m Sprint",
		Description: "Test your acceleration and sprint technique over 40 meters",
		SportID:     "athletics",
		Difficulty:  models.DifficultyBeginner,
		Duration:    8,
		Instructions: []string{
			"Position camera at starting line, angled view",
			"Run at maximum effort to finish line",
			"Maintain good form throughout",
		},
		Metrics: []models.MetricDef{
			{Key: "time_seconds", Name: "Sprint Time", Unit: "seconds", Min: 4.0, Max: 8.0, Required: true},
			{Key: "form_score", Name: "Running Form", Unit: "points", Min: 0, Max: 100, Required: true},
		},
		Scoring: models.ScoringRule{
			Function:   models.ScoringLinearDesc,
			Thresholds: models.ScoreThresholds{Pass: 55, Good: 70, Excellent: 85},
			XPPerPoint: 1.5,
			CoinBonus:  20,
		},
		BadgeUnlock: "first-assessment",
	},
}
