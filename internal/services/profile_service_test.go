package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelsetu/assessment-service/internal/leaderboard"
	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/storage"
	"github.com/khelsetu/assessment-service/internal/validator"
)

func newProfileService(t *testing.T) (*ProfileService, *storage.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.New(storage.NewMemoryKV(), validator.New(), logger)
	return NewProfileService(store, logger, validator.New()), store
}

func onboarding() *CreateProfileRequest {
	return &CreateProfileRequest{
		Name:           "Priya",
		PrimarySport:   "cricket",
		SelectedSports: []string{"cricket", "athletics"},
	}
}

func TestCreateProfileDefaults(t *testing.T) {
	svc, _ := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.Create(ctx, "user_1", onboarding())
	require.NoError(t, err)

	assert.Equal(t, "user_1", profile.ID)
	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 0, profile.XP)
	assert.Equal(t, 100, profile.Coins)
	assert.Empty(t, profile.Badges)
	assert.NotNil(t, profile.PersonalBests)
	assert.Equal(t, models.CurrentSchemaVersion, profile.SchemaVersion)

	loaded, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, profile.Name, loaded.Name)
}

func TestCreateProfileRejectsDuplicate(t *testing.T) {
	svc, _ := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user_1", onboarding())
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user_1", onboarding())
	require.ErrorIs(t, err, ErrProfileExists)
}

func TestCreateProfileRejectsUnknownSport(t *testing.T) {
	svc, _ := newProfileService(t)
	ctx := context.Background()

	req := onboarding()
	req.PrimarySport = "curling"
	_, err := svc.Create(ctx, "user_1", req)
	require.ErrorIs(t, err, ErrSportNotFound)

	req = onboarding()
	req.SelectedSports = []string{"cricket", "curling"}
	_, err = svc.Create(ctx, "user_1", req)
	require.ErrorIs(t, err, ErrSportNotFound)
}

func TestCreateProfileRejectsInvalidRequest(t *testing.T) {
	svc, _ := newProfileService(t)

	req := onboarding()
	req.Name = ""
	_, err := svc.Create(context.Background(), "user_1", req)
	require.Error(t, err)
}

func TestGetMissingProfile(t *testing.T) {
	svc, _ := newProfileService(t)

	_, err := svc.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestResetDeletesProfileAndAttempts(t *testing.T) {
	svc, store := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user_1", onboarding())
	require.NoError(t, err)

	mine := &models.Attempt{
		ID: "attempt_mine", TestID: "cricket-batting", UserID: "user_1",
		State: models.AttemptConfirmed, StartTime: time.Now(),
	}
	theirs := &models.Attempt{
		ID: "attempt_theirs", TestID: "cricket-batting", UserID: "user_2",
		State: models.AttemptConfirmed, StartTime: time.Now(),
	}
	require.NoError(t, store.SaveAttempt(ctx, mine))
	require.NoError(t, store.SaveAttempt(ctx, theirs))

	require.NoError(t, svc.Reset(ctx, "user_1"))

	_, err = svc.Get(ctx, "user_1")
	require.ErrorIs(t, err, ErrProfileNotFound)

	gone, err := store.LoadAttempt(ctx, "attempt_mine")
	require.NoError(t, err)
	require.Nil(t, gone)

	kept, err := store.LoadAttempt(ctx, "attempt_theirs")
	require.NoError(t, err)
	require.NotNil(t, kept, "other users' attempts survive a reset")
}

func TestResetClearsLeaderboardCaches(t *testing.T) {
	svc, store := newProfileService(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	board := leaderboard.New(store, logger)

	profile, err := svc.Create(ctx, "user_1", onboarding())
	require.NoError(t, err)
	require.NoError(t, board.UpdateUserScore(ctx, "cricket", profile, 88))

	entries, err := board.Get(ctx, "cricket", leaderboard.TimeframeAllTime, nil)
	require.NoError(t, err)
	require.Len(t, entries, leaderboard.RosterSize+1)

	require.NoError(t, svc.Reset(ctx, "user_1"))

	regenerated, err := board.Get(ctx, "cricket", leaderboard.TimeframeAllTime, nil)
	require.NoError(t, err)
	require.Len(t, regenerated, leaderboard.RosterSize, "roster regenerates from scratch")
	for _, entry := range regenerated {
		require.NotEqual(t, "user_1", entry.UserID, "reset user must not remain on the board")
	}
}

func TestChallengesForPrimarySport(t *testing.T) {
	svc, _ := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user_1", onboarding())
	require.NoError(t, err)

	quests, err := svc.Challenges(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, quests, 2, "common daily quest plus the cricket one")

	ids := []string{quests[0].ID, quests[1].ID}
	assert.Contains(t, ids, "daily-login")
	assert.Contains(t, ids, "daily-cricket-drive")
	for _, q := range quests {
		assert.True(t, q.ExpiresAt.After(time.Now().Add(-24*time.Hour)))
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, store := newProfileService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"attempt_old", "attempt_mid", "attempt_new"} {
		attempt := &models.Attempt{
			ID: id, TestID: "cricket-batting", UserID: "user_1",
			State:     models.AttemptConfirmed,
			StartTime: base.Add(time.Duration(i) * time.Hour),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.SaveAttempt(ctx, attempt))
	}
	other := &models.Attempt{
		ID: "attempt_other", TestID: "cricket-batting", UserID: "user_2",
		State: models.AttemptConfirmed, StartTime: base, CreatedAt: base,
	}
	require.NoError(t, store.SaveAttempt(ctx, other))

	history, err := svc.History(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "attempt_new", history[0].ID)
	assert.Equal(t, "attempt_mid", history[1].ID)
	assert.Equal(t, "attempt_old", history[2].ID)
}
