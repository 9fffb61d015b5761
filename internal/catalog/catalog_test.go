package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelsetu/assessment-service/internal/models"
)

// The catalog is static content; these tests guard its internal
// consistency so a content edit cannot silently break lookups.

func TestCatalogCrossReferences(t *testing.T) {
	for _, spec := range AllTests() {
		require.NotNil(t, Sport(spec.SportID), "test %s references unknown sport %s", spec.ID, spec.SportID)
		if spec.BadgeUnlock != "" {
			require.NotNil(t, Badge(spec.BadgeUnlock), "test %s references unknown badge %s", spec.ID, spec.BadgeUnlock)
		}
		require.NotEmpty(t, spec.Metrics)
		hasRequired := false
		for _, m := range spec.Metrics {
			assert.Greater(t, m.Max, m.Min, "metric %s of %s has an empty range", m.Key, spec.ID)
			if m.Required {
				hasRequired = true
			}
		}
		assert.True(t, hasRequired, "test %s has no scoreable metric", spec.ID)
		assert.Greater(t, spec.Duration, 0)

		th := spec.Scoring.Thresholds
		assert.True(t, th.Pass < th.Good && th.Good < th.Excellent,
			"thresholds of %s must ascend on the score scale", spec.ID)
		assert.LessOrEqual(t, th.Excellent, 100.0)
	}
}

func TestSpecLookup(t *testing.T) {
	spec := TestSpec("cricket-batting")
	require.NotNil(t, spec)
	assert.Equal(t, "cricket", spec.SportID)
	assert.Equal(t, models.ScoringLinearAsc, spec.Scoring.Function)

	require.Nil(t, TestSpec("no-such-test"))
}

func TestTestsForSport(t *testing.T) {
	for _, sport := range Sports() {
		for _, spec := range TestsForSport(sport.ID) {
			assert.Equal(t, sport.ID, spec.SportID)
		}
	}
	assert.Empty(t, TestsForSport("no-such-sport"))
}

func TestRosterPools(t *testing.T) {
	require.NotEmpty(t, AthleteNames)
	require.NotEmpty(t, AthleteAvatars)

	seen := map[string]bool{}
	for _, name := range AthleteNames {
		require.False(t, seen[name], "duplicate athlete name %s", name)
		seen[name] = true
	}
}

func TestDailyChallengesExpiry(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	quests := DailyChallenges("cricket", now)
	require.Len(t, quests, 2)
	for _, q := range quests {
		assert.Equal(t, now.Day(), q.ExpiresAt.Day())
		assert.True(t, q.ExpiresAt.After(now))
	}

	// Sports without bespoke content still get the common daily quest.
	common := DailyChallenges("basketball", now)
	require.Len(t, common, 1)
	assert.Equal(t, "daily-login", common[0].ID)
}
