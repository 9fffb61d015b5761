package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/validator"
)

func newTestStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(kv, validator.New(), logger), kv
}

func validProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:             "user_1",
		Name:           "Priya",
		PrimarySport:   "athletics",
		SelectedSports: []string{"athletics", "cricket"},
		Level:          1,
		XP:             0,
		Coins:          100,
		PersonalBests:  map[string]int{},
		SchemaVersion:  models.CurrentSchemaVersion,
		CreatedAt:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, validProfile()))

	loaded, err := store.LoadProfile(ctx, "user_1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Priya", loaded.Name)
	assert.Equal(t, []string{"athletics", "cricket"}, loaded.SelectedSports)
	assert.Equal(t, models.CurrentSchemaVersion, loaded.SchemaVersion)
}

func TestLoadProfileMissing(t *testing.T) {
	store, _ := newTestStore(t)

	loaded, err := store.LoadProfile(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveProfileNormalizesLevel(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	profile := validProfile()
	profile.XP = 250
	profile.Level = 99 // wrong on purpose

	require.NoError(t, store.SaveProfile(ctx, profile))

	loaded, err := store.LoadProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.Equal(t, 3, loaded.Level, "level is re-derived from XP on write")
}

func TestSaveProfileRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	profile := validProfile()
	profile.Name = ""

	err := store.SaveProfile(context.Background(), profile)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestLoadProfileDiscardsCorruptRecord(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, PrefixProfile+"user_1", []byte("{not json")))

	loaded, err := store.LoadProfile(ctx, "user_1")
	require.NoError(t, err)
	require.Nil(t, loaded, "corrupt record reads as absent")

	_, ok, err := kv.Get(ctx, PrefixProfile+"user_1")
	require.NoError(t, err)
	require.False(t, ok, "corrupt record is deleted, not left to fail again")
}

func TestLoadProfileMigratesV1(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	// A v1 record: skill_points instead of xp, none of the v2 progress
	// fields, no schema_version at all (v1 predates the field).
	v1 := []byte(`{
		"id": "user_1",
		"name": "Priya",
		"primary_sport": "athletics",
		"selected_sports": ["athletics"],
		"level": 1,
		"coins": 40,
		"skill_points": 130,
		"streak_days": 2
	}`)
	require.NoError(t, kv.Set(ctx, PrefixProfile+"user_1", v1))

	loaded, err := store.LoadProfile(ctx, "user_1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, 130, loaded.XP, "skill_points becomes xp")
	assert.Equal(t, 2, loaded.Level, "level re-derived from migrated xp")
	assert.Equal(t, models.CurrentSchemaVersion, loaded.SchemaVersion)
	assert.NotNil(t, loaded.PersonalBests)
	assert.Equal(t, 0, loaded.TotalAssessments)
	assert.Equal(t, 2, loaded.StreakDays, "untouched fields survive migration")
	assert.False(t, loaded.LastActiveDate.IsZero())

	// The migrated form is rewritten, so a second read decodes directly.
	data, ok, err := kv.Get(ctx, PrefixProfile+"user_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), `"schema_version":2`)
	assert.NotContains(t, string(data), "skill_points")
}

func TestLoadProfileRejectsFutureSchema(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	future := []byte(`{
		"id": "user_1",
		"name": "Priya",
		"primary_sport": "athletics",
		"selected_sports": ["athletics"],
		"level": 1,
		"xp": 0,
		"coins": 0,
		"schema_version": 99
	}`)
	require.NoError(t, kv.Set(ctx, PrefixProfile+"user_1", future))

	_, err := store.LoadProfile(ctx, "user_1")
	require.ErrorIs(t, err, ErrFutureSchema)

	// Unlike corruption, a future record is preserved untouched.
	_, ok, err := kv.Get(ctx, PrefixProfile+"user_1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAttemptRoundTripAndList(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	mk := func(id string) *models.Attempt {
		return &models.Attempt{
			ID:        id,
			TestID:    "cricket-batting",
			UserID:    "user_1",
			State:     models.AttemptRunning,
			StartTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	require.NoError(t, store.SaveAttempt(ctx, mk("attempt_a")))
	require.NoError(t, store.SaveAttempt(ctx, mk("attempt_b")))
	require.NoError(t, kv.Set(ctx, PrefixAttempt+"attempt_c", []byte("garbage")))

	loaded, err := store.LoadAttempt(ctx, "attempt_a")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, models.AttemptRunning, loaded.State)

	all, err := store.ListAttempts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2, "undecodable records are skipped")

	require.NoError(t, store.DeleteAttempt(ctx, "attempt_a"))
	gone, err := store.LoadAttempt(ctx, "attempt_a")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestSaveAttemptRejectsUnknownState(t *testing.T) {
	store, _ := newTestStore(t)

	attempt := &models.Attempt{
		ID:        "attempt_x",
		TestID:    "cricket-batting",
		UserID:    "user_1",
		State:     "exploded",
		StartTime: time.Now(),
	}
	err := store.SaveAttempt(context.Background(), attempt)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRosterRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	entries := []models.LeaderboardEntry{
		{UserID: "bot_1", Username: "Ishaan Patel", Score: 91, Rank: 1, Sport: "cricket"},
		{UserID: "bot_2", Username: "Kavya Nair", Score: 84, Rank: 2, Sport: "cricket"},
	}
	require.NoError(t, store.SaveRoster(ctx, "cricket_weekly", entries))

	loaded, err := store.LoadRoster(ctx, "cricket_weekly")
	require.NoError(t, err)
	require.Equal(t, entries, loaded)

	empty, err := store.LoadRoster(ctx, "athletics_weekly")
	require.NoError(t, err)
	require.Empty(t, empty)

	require.NoError(t, store.DeleteRosters(ctx))
	cleared, err := store.LoadRoster(ctx, "cricket_weekly")
	require.NoError(t, err)
	require.Empty(t, cleared)
}
