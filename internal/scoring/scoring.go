// Package scoring reduces a generated metric set to a 0-100 score and the
// experience/currency payout defined by the test's scoring rule.
package scoring

import (
	"math"

	"github.com/khelsetu/assessment-service/internal/models"
)

// Tier bonuses are disjoint and checked highest-first: only the single
// highest threshold met pays out.
const (
	bonusPass      = 10
	bonusGood      = 20
	bonusExcellent = 50
)

// Result is the outcome of evaluating one attempt's metrics.
type Result struct {
	Score int `json:"score"`
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// Evaluate computes the final score and payout for a metric set.
//
// Each required metric is normalized into [0,1] over its declared range
// (metrics with a zero range or no generated value are skipped) and
// converted to a 0-100 sub-score, inverted for descending rules. The
// score is the rounded arithmetic mean of the sub-scores, or 0 when the
// spec declares no required metrics.
func Evaluate(spec *models.TestSpec, metrics map[string]float64) Result {
	score := calculateScore(spec, metrics)

	res := Result{
		Score: score,
		XP:    int(math.Floor(float64(score) * spec.Scoring.XPPerPoint)),
		Coins: spec.Scoring.CoinBonus,
	}

	t := spec.Scoring.Thresholds
	switch {
	case float64(score) >= t.Excellent:
		res.Coins += bonusExcellent
	case float64(score) >= t.Good:
		res.Coins += bonusGood
	case float64(score) >= t.Pass:
		res.Coins += bonusPass
	}

	return res
}

func calculateScore(spec *models.TestSpec, metrics map[string]float64) int {
	var total float64
	var required int

	for _, def := range spec.Metrics {
		if !def.Required {
			continue
		}
		required++

		value, ok := metrics[def.Key]
		if !ok {
			continue
		}

		span := def.Max - def.Min
		if span == 0 {
			continue
		}

		normalized := (value - def.Min) / span
		if spec.Scoring.Function == models.ScoringLinearAsc {
			total += normalized * 100
		} else {
			total += (1 - normalized) * 100
		}
	}

	if required == 0 {
		return 0
	}
	return int(math.Round(total / float64(required)))
}
