package simulate

import (
	"time"

	"github.com/khelsetu/assessment-service/internal/models"
)

const msPerDay = 86_400_000

// DaySeed buckets a point in time into an integer day index so that
// repeated simulations within the same calendar day share a seed.
func DaySeed(now time.Time) int64 {
	return now.UnixMilli() / msPerDay
}

// GenerateMetrics synthesizes a metric value for every metric the spec
// declares. The result is a pure function of (spec, user, day-of-now):
// identical for retries on the same day and user, different across days.
//
// Performance is biased by user level (full benefit at level 50), a +0.1
// bonus when the test's sport is the user's primary sport, and a small
// seeded daily variation. Ascending-scored metrics interpolate from Min
// toward Max by the resulting factor, descending ones from Max toward
// Min. Every value is clamped to the metric's declared bounds.
func GenerateMetrics(spec *models.TestSpec, user *models.UserProfile, now time.Time) map[string]float64 {
	rnd := NewRand(HashString(user.ID) + DaySeed(now))

	levelFactor := float64(user.Level) / 50
	if levelFactor > 1 {
		levelFactor = 1
	}

	sportBonus := 0.0
	if user.PrimarySport == spec.SportID {
		sportBonus = 0.1
	}

	_, dailyVariation := rnd.Float(-0.05, 0.05)

	factor := clamp01(levelFactor + sportBonus + dailyVariation)

	metrics := make(map[string]float64, len(spec.Metrics))
	ascending := spec.Scoring.Function == models.ScoringLinearAsc
	for _, def := range spec.Metrics {
		span := def.Max - def.Min

		var value float64
		if ascending {
			value = def.Min + span*factor
		} else {
			value = def.Max - span*factor
		}

		if value < def.Min {
			value = def.Min
		}
		if value > def.Max {
			value = def.Max
		}
		metrics[def.Key] = value
	}

	return metrics
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
