// Package engine owns the lifecycle of a single in-flight assessment
// attempt: start, pause/resume accounting, automatic completion on
// timeout, and reward application on confirmation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/events"
	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/scoring"
	"github.com/khelsetu/assessment-service/internal/simulate"
	"github.com/khelsetu/assessment-service/internal/storage"
)

// ErrAttemptInProgress is returned by Start while another attempt is
// running. It is the only transition error the engine surfaces; all
// other out-of-order calls are silent no-ops because the UI may race
// with timer-driven transitions.
var ErrAttemptInProgress = errors.New("test already in progress")

// DefaultPollInterval is how often the expiry timer checks remaining time.
const DefaultPollInterval = 250 * time.Millisecond

// Board receives the user's confirmed score for leaderboard re-ranking.
type Board interface {
	UpdateUserScore(ctx context.Context, sportID string, user *models.UserProfile, score int) error
}

// Subscriber is invoked synchronously with an attempt snapshot after
// every state change, and with nil once the active session ends.
type Subscriber func(attempt *models.Attempt)

// Engine holds at most one active attempt at a time. A nil current
// attempt means idle. Construct with New and share by reference;
// the type itself enforces the single-attempt invariant.
type Engine struct {
	store     *storage.Store
	board     Board
	publisher events.Publisher
	logger    *slog.Logger

	now          func() time.Time
	pollInterval time.Duration

	mu          sync.Mutex
	attempt     *models.Attempt
	spec        *models.TestSpec
	stopTimer   chan struct{}
	subscribers map[int]Subscriber
	nextSubID   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPollInterval overrides the expiry-check cadence.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) { e.pollInterval = d }
}

func New(store *storage.Store, board Board, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		board:        board,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
		pollInterval: DefaultPollInterval,
		subscribers:  make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers an observer and returns its unsubscribe function.
func (e *Engine) Subscribe(fn Subscriber) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

// CurrentAttempt returns a snapshot of the active attempt, or nil when
// the engine is idle.
func (e *Engine) CurrentAttempt() *models.Attempt {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAttempt(e.attempt)
}

// Elapsed returns active (unpaused) time since start, in milliseconds,
// clamped to >= 0.
func (e *Engine) Elapsed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsedLocked()
}

// Remaining returns milliseconds until the spec duration is exhausted.
func (e *Engine) Remaining() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingLocked()
}

func (e *Engine) elapsedLocked() int64 {
	if e.attempt == nil {
		return 0
	}
	elapsed := e.now().Sub(e.attempt.StartTime).Milliseconds() - e.attempt.PausedDuration
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (e *Engine) remainingLocked() int64 {
	if e.attempt == nil || e.spec == nil {
		return 0
	}
	remaining := int64(e.spec.Duration)*1000 - e.elapsedLocked()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Start creates a new running attempt for the test. It fails with
// ErrAttemptInProgress while another attempt is running.
func (e *Engine) Start(ctx context.Context, testID, userID string, spec *models.TestSpec) (*models.Attempt, error) {
	e.mu.Lock()

	if e.attempt != nil && e.attempt.State == models.AttemptRunning {
		e.mu.Unlock()
		return nil, ErrAttemptInProgress
	}

	now := e.now()
	attempt := &models.Attempt{
		ID:        "attempt_" + uuid.NewString(),
		TestID:    testID,
		UserID:    userID,
		State:     models.AttemptRunning,
		StartTime: now,
		Metrics:   map[string]float64{},
		CreatedAt: now,
	}

	if err := e.store.SaveAttempt(ctx, attempt); err != nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("persist new attempt: %w", err)
	}

	e.attempt = attempt
	e.spec = spec
	e.startTimerLocked()

	e.logger.Info("attempt started",
		"attempt_id", attempt.ID,
		"test_id", testID,
		"user_id", userID,
		"duration_s", spec.Duration)

	snapshot := cloneAttempt(attempt)
	e.mu.Unlock()

	e.notify()
	return snapshot, nil
}

// Pause freezes the running attempt. A no-op in any other state.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	if e.attempt == nil || e.attempt.State != models.AttemptRunning {
		e.mu.Unlock()
		return nil
	}

	next := cloneAttempt(e.attempt)
	next.State = models.AttemptPaused
	pausedAt := e.now()
	next.PausedStart = &pausedAt

	if err := e.store.SaveAttempt(ctx, next); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("persist paused attempt: %w", err)
	}

	e.attempt = next
	e.stopTimerLocked()
	e.logger.Info("attempt paused", "attempt_id", next.ID)
	e.mu.Unlock()

	e.notify()
	return nil
}

// Resume continues a paused attempt, folding the pause interval into the
// accumulated paused duration. A no-op in any other state.
func (e *Engine) Resume(ctx context.Context) error {
	e.mu.Lock()
	if e.attempt == nil || e.attempt.State != models.AttemptPaused {
		e.mu.Unlock()
		return nil
	}

	next := cloneAttempt(e.attempt)
	if next.PausedStart != nil {
		next.PausedDuration += e.now().Sub(*next.PausedStart).Milliseconds()
		next.PausedStart = nil
	}
	next.State = models.AttemptRunning

	if err := e.store.SaveAttempt(ctx, next); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("persist resumed attempt: %w", err)
	}

	e.attempt = next
	e.startTimerLocked()
	e.logger.Info("attempt resumed",
		"attempt_id", next.ID,
		"paused_ms", next.PausedDuration)
	e.mu.Unlock()

	e.notify()
	return nil
}

// Complete finishes the attempt now: it simulates the performance
// metrics for the user, scores them, and moves the attempt to completed.
// Callers use it to finish early; the poll timer calls it on expiry.
// A no-op when no attempt is active.
func (e *Engine) Complete(ctx context.Context, user *models.UserProfile) error {
	e.mu.Lock()
	err := e.completeLocked(ctx, user)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

func (e *Engine) completeLocked(ctx context.Context, user *models.UserProfile) error {
	if e.attempt == nil || e.spec == nil {
		return nil
	}

	next := cloneAttempt(e.attempt)
	next.State = models.AttemptCompleted
	endTime := e.now()
	next.EndTime = &endTime
	next.Metrics = simulate.GenerateMetrics(e.spec, user, e.now())

	result := scoring.Evaluate(e.spec, next.Metrics)
	next.Score = &result.Score
	next.XPEarned = &result.XP
	next.CoinsEarned = &result.Coins

	if err := e.store.SaveAttempt(ctx, next); err != nil {
		return fmt.Errorf("persist completed attempt: %w", err)
	}

	e.attempt = next
	e.stopTimerLocked()

	e.logger.Info("attempt completed",
		"attempt_id", next.ID,
		"score", result.Score,
		"xp_earned", result.XP,
		"coins_earned", result.Coins)
	return nil
}

// Confirm finalizes a completed attempt, applying its rewards to the
// stored profile in a single write, then clears the engine back to idle.
// A no-op unless the current attempt is completed.
func (e *Engine) Confirm(ctx context.Context) error {
	e.mu.Lock()
	if e.attempt == nil || e.attempt.State != models.AttemptCompleted {
		e.mu.Unlock()
		return nil
	}

	next := cloneAttempt(e.attempt)
	next.State = models.AttemptConfirmed

	if err := e.store.SaveAttempt(ctx, next); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("persist confirmed attempt: %w", err)
	}
	e.attempt = next

	spec := e.spec
	if err := e.applyRewards(ctx, next, spec); err != nil {
		// Roll back to completed so a retried Confirm runs the reward
		// path again instead of hitting the state guard above.
		rollback := cloneAttempt(next)
		rollback.State = models.AttemptCompleted
		if saveErr := e.store.SaveAttempt(ctx, rollback); saveErr != nil {
			e.logger.Error("failed to persist confirm rollback",
				"attempt_id", rollback.ID,
				"error", saveErr)
		}
		e.attempt = rollback
		e.mu.Unlock()
		return err
	}

	e.stopTimerLocked()
	e.attempt = nil
	e.spec = nil
	e.logger.Info("attempt confirmed", "attempt_id", next.ID)
	e.mu.Unlock()

	e.notify()
	return nil
}

// Cancel discards the active attempt in any state without touching the
// profile. The timer is stopped before the attempt is removed so no
// late tick can fire afterwards. A no-op when idle.
func (e *Engine) Cancel(ctx context.Context) error {
	e.mu.Lock()
	if e.attempt == nil {
		e.mu.Unlock()
		return nil
	}

	e.stopTimerLocked()

	if err := e.store.DeleteAttempt(ctx, e.attempt.ID); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("delete cancelled attempt: %w", err)
	}

	e.logger.Info("attempt cancelled", "attempt_id", e.attempt.ID)
	e.attempt = nil
	e.spec = nil
	e.mu.Unlock()

	e.notify()
	return nil
}

// ===== REWARDS =====

// applyRewards folds a confirmed attempt into the stored profile: XP,
// level-up coin bonus, earned coins, personal best, streak, badge
// unlock, assessment count. The profile is written exactly once, so no
// partial update is ever observable. Called with e.mu held.
func (e *Engine) applyRewards(ctx context.Context, attempt *models.Attempt, spec *models.TestSpec) error {
	user, err := e.store.LoadProfile(ctx, attempt.UserID)
	if err != nil {
		return fmt.Errorf("load profile for rewards: %w", err)
	}
	if user == nil {
		return fmt.Errorf("profile %s not found for reward application", attempt.UserID)
	}

	now := e.now()
	oldLevel := user.Level
	var published []func()

	if attempt.XPEarned != nil {
		user.XP += *attempt.XPEarned
	}

	newLevel := models.LevelForXP(user.XP)
	if newLevel > oldLevel {
		levelBonus := newLevel * 10
		user.Coins += levelBonus
		published = append(published, func() {
			e.publish(ctx, events.EventLevelUp, events.LevelUpEvent{
				UserID:    user.ID,
				OldLevel:  oldLevel,
				NewLevel:  newLevel,
				CoinBonus: levelBonus,
			})
		})
	}
	user.Level = newLevel

	if attempt.CoinsEarned != nil {
		user.Coins += *attempt.CoinsEarned
	}

	score := 0
	if attempt.Score != nil {
		score = *attempt.Score
	}
	if user.PersonalBests == nil {
		user.PersonalBests = map[string]int{}
	}
	if best := user.PersonalBests[attempt.TestID]; score > best {
		old := best
		user.PersonalBests[attempt.TestID] = score
		published = append(published, func() {
			e.publish(ctx, events.EventPersonalBest, events.PersonalBestEvent{
				UserID:   user.ID,
				TestID:   attempt.TestID,
				OldScore: old,
				NewScore: score,
			})
		})
	}

	if spec != nil && spec.BadgeUnlock != "" && !user.HasBadge(spec.BadgeUnlock) {
		if catalog.Badge(spec.BadgeUnlock) != nil {
			user.Badges = append(user.Badges, spec.BadgeUnlock)
			published = append(published, func() {
				e.publish(ctx, events.EventBadgeUnlocked, events.BadgeUnlockedEvent{
					UserID:  user.ID,
					BadgeID: spec.BadgeUnlock,
				})
			})
		}
	}

	user.StreakDays = nextStreak(user.StreakDays, user.LastActiveDate, now)
	user.TotalAssessments++
	user.LastActiveDate = now

	if err := e.store.SaveProfile(ctx, user); err != nil {
		return fmt.Errorf("save rewarded profile: %w", err)
	}

	// Leaderboard and event failures do not roll back the confirm; they
	// are side channels, logged and dropped.
	if e.board != nil && spec != nil {
		if err := e.board.UpdateUserScore(ctx, spec.SportID, user, score); err != nil {
			e.logger.Error("failed to update leaderboard",
				"sport_id", spec.SportID,
				"user_id", user.ID,
				"error", err)
		}
	}

	e.publish(ctx, events.EventAttemptConfirmed, events.AttemptConfirmedEvent{
		AttemptID: attempt.ID,
		TestID:    attempt.TestID,
		UserID:    attempt.UserID,
		Score:     score,
		XPEarned:  valueOrZero(attempt.XPEarned),
		Coins:     valueOrZero(attempt.CoinsEarned),
	})
	for _, fn := range published {
		fn()
	}

	return nil
}

// nextStreak advances the consecutive-day counter: unchanged within a
// day, incremented when the previous activity was yesterday, reset to 1
// after any gap.
func nextStreak(current int, lastActive, now time.Time) int {
	if lastActive.IsZero() {
		return 1
	}
	ly, lm, ld := lastActive.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		if current == 0 {
			return 1
		}
		return current
	}
	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ly == yy && lm == ym && ld == yd {
		return current + 1
	}
	return 1
}

func (e *Engine) publish(ctx context.Context, t events.EventType, data interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, t, data); err != nil {
		e.logger.Error("failed to publish event", "event_type", t, "error", err)
	}
}

// ===== TIMER =====

func (e *Engine) startTimerLocked() {
	e.stopTimerLocked()
	stop := make(chan struct{})
	e.stopTimer = stop
	go e.runTimer(stop)
}

func (e *Engine) stopTimerLocked() {
	if e.stopTimer != nil {
		close(e.stopTimer)
		e.stopTimer = nil
	}
}

func (e *Engine) runTimer(stop chan struct{}) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if e.checkExpiry() {
				return
			}
		}
	}
}

// checkExpiry performs the only transition the engine initiates on its
// own: completing a running attempt whose time is up. The running-state
// check under the lock makes a late tick after pause/cancel harmless.
func (e *Engine) checkExpiry() bool {
	ctx := context.Background()

	e.mu.Lock()
	if e.attempt == nil || e.attempt.State != models.AttemptRunning {
		e.mu.Unlock()
		return true
	}
	if e.remainingLocked() > 0 {
		e.mu.Unlock()
		return false
	}

	user, err := e.store.LoadProfile(ctx, e.attempt.UserID)
	if err != nil || user == nil {
		e.logger.Error("cannot load profile for auto-completion",
			"user_id", e.attempt.UserID,
			"error", err)
		e.mu.Unlock()
		return false
	}

	if err := e.completeLocked(ctx, user); err != nil {
		e.logger.Error("auto-completion failed",
			"attempt_id", e.attempt.ID,
			"error", err)
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	e.notify()
	return true
}

// ===== OBSERVERS =====

func (e *Engine) notify() {
	e.mu.Lock()
	snapshot := cloneAttempt(e.attempt)
	subs := make([]Subscriber, 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func cloneAttempt(a *models.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Metrics != nil {
		cp.Metrics = make(map[string]float64, len(a.Metrics))
		for k, v := range a.Metrics {
			cp.Metrics[k] = v
		}
	}
	if a.EndTime != nil {
		t := *a.EndTime
		cp.EndTime = &t
	}
	if a.PausedStart != nil {
		t := *a.PausedStart
		cp.PausedStart = &t
	}
	if a.Score != nil {
		v := *a.Score
		cp.Score = &v
	}
	if a.XPEarned != nil {
		v := *a.XPEarned
		cp.XPEarned = &v
	}
	if a.CoinsEarned != nil {
		v := *a.CoinsEarned
		cp.CoinsEarned = &v
	}
	return &cp
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
