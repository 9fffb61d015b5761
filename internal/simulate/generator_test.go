package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelsetu/assessment-service/internal/models"
)

func sprintSpec() *models.TestSpec {
	return &models.TestSpec{
		ID:       "athletics-sprint-40m",
		SportID:  "athletics",
		Duration: 8,
		Metrics: []models.MetricDef{
			{Key: "time_seconds", Min: 4.0, Max: 8.0, Required: true},
			{Key: "form_score", Min: 0, Max: 100, Required: true},
		},
		Scoring: models.ScoringRule{Function: models.ScoringLinearDesc},
	}
}

func battingSpec() *models.TestSpec {
	return &models.TestSpec{
		ID:       "cricket-batting",
		SportID:  "cricket",
		Duration: 10,
		Metrics: []models.MetricDef{
			{Key: "technique_score", Min: 0, Max: 100, Required: true},
			{Key: "shot_accuracy", Min: 0, Max: 100, Required: true},
		},
		Scoring: models.ScoringRule{Function: models.ScoringLinearAsc},
	}
}

func athlete(level int, primarySport string) *models.UserProfile {
	return &models.UserProfile{
		ID:           "user_test",
		Name:         "Test Athlete",
		PrimarySport: primarySport,
		Level:        level,
	}
}

func TestGenerateMetricsWithinBounds(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for _, spec := range []*models.TestSpec{sprintSpec(), battingSpec()} {
		for level := 1; level <= 60; level += 7 {
			metrics := GenerateMetrics(spec, athlete(level, "cricket"), day)
			require.Len(t, metrics, len(spec.Metrics))
			for _, def := range spec.Metrics {
				value, ok := metrics[def.Key]
				require.True(t, ok, "missing metric %s", def.Key)
				assert.GreaterOrEqual(t, value, def.Min, "%s at level %d", def.Key, level)
				assert.LessOrEqual(t, value, def.Max, "%s at level %d", def.Key, level)
			}
		}
	}
}

func TestGenerateMetricsDeterministicPerDay(t *testing.T) {
	user := athlete(10, "cricket")
	spec := battingSpec()

	morning := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)

	first := GenerateMetrics(spec, user, morning)
	retry := GenerateMetrics(spec, user, evening)
	require.Equal(t, first, retry, "same user and day must reproduce metrics")

	tomorrow := GenerateMetrics(spec, user, nextDay)
	assert.NotEqual(t, first, tomorrow, "a new day should vary the metrics")
}

func TestGenerateMetricsDiffersBetweenUsers(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	spec := battingSpec()

	a := GenerateMetrics(spec, &models.UserProfile{ID: "user_a", Level: 10, PrimarySport: "cricket"}, day)
	b := GenerateMetrics(spec, &models.UserProfile{ID: "user_b", Level: 10, PrimarySport: "cricket"}, day)
	assert.NotEqual(t, a, b)
}

// A capped-out athlete in their primary sport pins the performance
// factor at 1 regardless of daily variation.
func TestGenerateMetricsSaturatedAthlete(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	asc := GenerateMetrics(battingSpec(), athlete(55, "cricket"), day)
	for _, def := range battingSpec().Metrics {
		assert.InDelta(t, def.Max, asc[def.Key], 1e-9, "ascending metrics sit at max")
	}

	desc := GenerateMetrics(sprintSpec(), athlete(55, "athletics"), day)
	for _, def := range sprintSpec().Metrics {
		assert.InDelta(t, def.Min, desc[def.Key], 1e-9, "descending metrics sit at min")
	}
}

func TestDaySeedBuckets(t *testing.T) {
	early := time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)
	late := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	next := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)

	require.Equal(t, DaySeed(early), DaySeed(late))
	require.Equal(t, DaySeed(early)+1, DaySeed(next))
}
