package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelsetu/assessment-service/internal/models"
)

func ascSpec() *models.TestSpec {
	return &models.TestSpec{
		ID:      "cricket-batting",
		SportID: "cricket",
		Metrics: []models.MetricDef{
			{Key: "technique_score", Min: 0, Max: 100, Required: true},
			{Key: "shot_accuracy", Min: 0, Max: 100, Required: true},
		},
		Scoring: models.ScoringRule{
			Function:   models.ScoringLinearAsc,
			Thresholds: models.ScoreThresholds{Pass: 60, Good: 75, Excellent: 90},
			XPPerPoint: 1.2,
			CoinBonus:  15,
		},
	}
}

func descSpec() *models.TestSpec {
	return &models.TestSpec{
		ID:      "athletics-sprint-40m",
		SportID: "athletics",
		Metrics: []models.MetricDef{
			{Key: "time_seconds", Min: 4.0, Max: 8.0, Required: true},
		},
		Scoring: models.ScoringRule{
			Function:   models.ScoringLinearDesc,
			Thresholds: models.ScoreThresholds{Pass: 40, Good: 60, Excellent: 80},
			XPPerPoint: 1.5,
			CoinBonus:  20,
		},
	}
}

func TestEvaluateRoundTrip(t *testing.T) {
	spec := ascSpec()

	best := Evaluate(spec, map[string]float64{"technique_score": 100, "shot_accuracy": 100})
	require.Equal(t, 100, best.Score)

	worst := Evaluate(spec, map[string]float64{"technique_score": 0, "shot_accuracy": 0})
	require.Equal(t, 0, worst.Score)

	// Descending rule inverts: best raw value is the minimum.
	fast := Evaluate(descSpec(), map[string]float64{"time_seconds": 4.0})
	require.Equal(t, 100, fast.Score)
	slow := Evaluate(descSpec(), map[string]float64{"time_seconds": 8.0})
	require.Equal(t, 0, slow.Score)
}

func TestEvaluateMonotonicity(t *testing.T) {
	asc := ascSpec()
	prev := -1
	for v := 0.0; v <= 100; v += 5 {
		res := Evaluate(asc, map[string]float64{"technique_score": v, "shot_accuracy": 50})
		require.GreaterOrEqual(t, res.Score, prev, "ascending score must not decrease at %v", v)
		prev = res.Score
	}

	desc := descSpec()
	prev = 101
	for v := 4.0; v <= 8.0; v += 0.25 {
		res := Evaluate(desc, map[string]float64{"time_seconds": v})
		require.LessOrEqual(t, res.Score, prev, "descending score must not increase at %v", v)
		prev = res.Score
	}
}

func TestEvaluateXPAndCoinTiers(t *testing.T) {
	spec := ascSpec()

	tests := []struct {
		name      string
		technique float64
		accuracy  float64
		wantScore int
		wantXP    int
		wantCoins int
	}{
		{"below pass", 30, 30, 30, 36, 15},
		{"pass tier only", 60, 60, 60, 72, 25},
		{"good tier only", 80, 80, 80, 96, 35},
		{"excellent tier only", 95, 95, 95, 114, 65},
		{"tier boundary is inclusive", 90, 90, 90, 108, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(spec, map[string]float64{
				"technique_score": tt.technique,
				"shot_accuracy":   tt.accuracy,
			})
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantXP, res.XP)
			assert.Equal(t, tt.wantCoins, res.Coins, "only the highest tier bonus applies")
		})
	}
}

func TestEvaluateEdgeCases(t *testing.T) {
	t.Run("no required metrics scores zero", func(t *testing.T) {
		spec := ascSpec()
		for i := range spec.Metrics {
			spec.Metrics[i].Required = false
		}
		res := Evaluate(spec, map[string]float64{"technique_score": 100})
		require.Equal(t, 0, res.Score)
		require.Equal(t, 0, res.XP)
	})

	t.Run("zero range metric is skipped", func(t *testing.T) {
		spec := ascSpec()
		spec.Metrics = append(spec.Metrics, models.MetricDef{
			Key: "constant", Min: 5, Max: 5, Required: true,
		})
		res := Evaluate(spec, map[string]float64{
			"technique_score": 100,
			"shot_accuracy":   100,
			"constant":        5,
		})
		// Mean still divides by the required count, matching the
		// degraded fallback rather than raising.
		require.Equal(t, 67, res.Score)
	})

	t.Run("missing metric value is skipped", func(t *testing.T) {
		res := Evaluate(ascSpec(), map[string]float64{"technique_score": 100})
		require.Equal(t, 50, res.Score)
	})
}
