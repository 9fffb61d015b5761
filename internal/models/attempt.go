package models

import "time"

type AttemptState string

const (
	AttemptRunning   AttemptState = "running"
	AttemptPaused    AttemptState = "paused"
	AttemptCompleted AttemptState = "completed"
	AttemptConfirmed AttemptState = "confirmed"
)

// Attempt is one timed session of a user performing a test. It is created
// by the engine on start, mutated through pause/resume/completion, and
// either deleted (cancel) or folded into the profile (confirm).
//
// Invariants: PausedStart is set if and only if State is paused;
// Score/XPEarned/CoinsEarned stay nil until State reaches completed.
type Attempt struct {
	ID     string       `json:"id" validate:"required"`
	TestID string       `json:"test_id" validate:"required"`
	UserID string       `json:"user_id" validate:"required"`
	State  AttemptState `json:"state" validate:"required,oneof=running paused completed confirmed"`

	StartTime time.Time  `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// PausedDuration accumulates completed pause intervals in milliseconds.
	PausedDuration int64      `json:"paused_duration"`
	PausedStart    *time.Time `json:"paused_start,omitempty"`

	Metrics map[string]float64 `json:"metrics"`

	Score       *int `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	XPEarned    *int `json:"xp_earned,omitempty" validate:"omitempty,gte=0"`
	CoinsEarned *int `json:"coins_earned,omitempty" validate:"omitempty,gte=0"`

	CreatedAt time.Time `json:"created_at"`
}

// Scored reports whether the attempt has reached a state where score and
// rewards are populated.
func (a *Attempt) Scored() bool {
	return a.State == AttemptCompleted || a.State == AttemptConfirmed
}
