package models

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type ScoringFunction string

const (
	// ScoringLinearAsc scores higher raw values higher (e.g. technique points).
	ScoringLinearAsc ScoringFunction = "linear_asc"
	// ScoringLinearDesc scores lower raw values higher (e.g. sprint time).
	ScoringLinearDesc ScoringFunction = "linear_desc"
)

// MetricDef declares a single measurable quantity of a test, bounded by
// Min/Max. Only metrics flagged Required contribute to the final score.
type MetricDef struct {
	Key      string  `json:"key" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Unit     string  `json:"unit"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max" validate:"gtefield=Min"`
	Required bool    `json:"required"`
}

type ScoreThresholds struct {
	Pass      float64 `json:"pass"`
	Good      float64 `json:"good"`
	Excellent float64 `json:"excellent"`
}

// ScoringRule maps a metric set to a 0-100 score and the reward payout.
type ScoringRule struct {
	Function   ScoringFunction `json:"function" validate:"required,oneof=linear_asc linear_desc"`
	Thresholds ScoreThresholds `json:"thresholds"`
	XPPerPoint float64         `json:"xp_per_point" validate:"gte=0"`
	CoinBonus  int             `json:"coin_bonus" validate:"gte=0"`
}

// TestSpec is the immutable, statically defined description of one
// sport-specific assessment test. Loaded from the catalog at startup,
// never persisted.
type TestSpec struct {
	ID           string      `json:"id" validate:"required"`
	Name         string      `json:"name" validate:"required"`
	Description  string      `json:"description"`
	SportID      string      `json:"sport_id" validate:"required"`
	Difficulty   Difficulty  `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Duration     int         `json:"duration" validate:"required,min=1"` // seconds
	Instructions []string    `json:"instructions"`
	Metrics      []MetricDef `json:"metrics" validate:"required,min=1,dive"`
	Scoring      ScoringRule `json:"scoring" validate:"required"`

	// BadgeUnlock optionally names a badge granted the first time this
	// test is confirmed.
	BadgeUnlock string `json:"badge_unlock,omitempty"`
}

type Sport struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Rarity      BadgeRarity `json:"rarity"`
	Requirement string      `json:"requirement"`
}
