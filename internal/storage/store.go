package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/validator"
)

var (
	// ErrInvalidRecord is returned when a record fails schema validation
	// before a write. Reads never surface it: a corrupt stored record is
	// discarded and reported absent instead.
	ErrInvalidRecord = errors.New("record failed schema validation")

	// ErrFutureSchema is returned when a stored profile carries a schema
	// version newer than this build understands. There is no downgrade
	// path.
	ErrFutureSchema = errors.New("stored schema version is newer than supported")
)

// Store is the typed persistence layer over a KV backend. Every write
// validates the record against its schema first; every profile read runs
// the migration chain before returning.
type Store struct {
	kv        KV
	validator *validator.Validator
	logger    *slog.Logger
}

func New(kv KV, v *validator.Validator, logger *slog.Logger) *Store {
	return &Store{kv: kv, validator: v, logger: logger}
}

// ===== PROFILE =====

// SaveProfile validates and writes the profile. Level is re-derived from
// XP before the write so the two fields can never disagree in storage.
func (s *Store) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.Level = models.LevelForXP(profile.XP)

	if err := s.validator.Validate(profile); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Set(ctx, PrefixProfile+profile.ID, data); err != nil {
		return fmt.Errorf("save profile %s: %w", profile.ID, err)
	}
	return nil
}

// LoadProfile returns (nil, nil) when no profile is stored. A record that
// cannot be decoded or validated is deleted and treated as absent, forcing
// the caller onto the fresh-onboarding path. Older schema versions are
// migrated and rewritten before being returned.
func (s *Store) LoadProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	data, ok, err := s.kv.Get(ctx, PrefixProfile+id)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	profile, migrated, err := migrateProfile(data)
	if errors.Is(err, ErrFutureSchema) {
		return nil, err
	}
	if err == nil {
		err = s.validator.Validate(profile)
	}
	if err != nil {
		s.logger.Warn("discarding corrupt profile record", "profile_id", id, "error", err)
		if delErr := s.kv.Delete(ctx, PrefixProfile+id); delErr != nil {
			return nil, fmt.Errorf("discard corrupt profile %s: %w", id, delErr)
		}
		return nil, nil
	}

	if migrated {
		s.logger.Info("migrated profile to current schema",
			"profile_id", id,
			"schema_version", profile.SchemaVersion)
		if err := s.SaveProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("rewrite migrated profile %s: %w", id, err)
		}
	}

	return profile, nil
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, PrefixProfile+id)
}

// ===== ATTEMPTS =====

func (s *Store) SaveAttempt(ctx context.Context, attempt *models.Attempt) error {
	if err := s.validator.Validate(attempt); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.kv.Set(ctx, PrefixAttempt+attempt.ID, data); err != nil {
		return fmt.Errorf("save attempt %s: %w", attempt.ID, err)
	}
	return nil
}

// LoadAttempt returns (nil, nil) when the attempt does not exist.
func (s *Store) LoadAttempt(ctx context.Context, id string) (*models.Attempt, error) {
	data, ok, err := s.kv.Get(ctx, PrefixAttempt+id)
	if err != nil {
		return nil, fmt.Errorf("load attempt %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	var attempt models.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		s.logger.Warn("discarding corrupt attempt record", "attempt_id", id, "error", err)
		if delErr := s.kv.Delete(ctx, PrefixAttempt+id); delErr != nil {
			return nil, fmt.Errorf("discard corrupt attempt %s: %w", id, delErr)
		}
		return nil, nil
	}
	return &attempt, nil
}

func (s *Store) DeleteAttempt(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, PrefixAttempt+id)
}

// ListAttempts returns every stored attempt. Records that fail to decode
// are skipped, not propagated.
func (s *Store) ListAttempts(ctx context.Context) ([]*models.Attempt, error) {
	blobs, err := s.kv.List(ctx, PrefixAttempt)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	attempts := make([]*models.Attempt, 0, len(blobs))
	for _, blob := range blobs {
		var attempt models.Attempt
		if err := json.Unmarshal(blob, &attempt); err != nil {
			s.logger.Warn("skipping corrupt attempt record", "error", err)
			continue
		}
		attempts = append(attempts, &attempt)
	}
	return attempts, nil
}

// ===== LEADERBOARD =====

func (s *Store) SaveRoster(ctx context.Context, cacheKey string, entries []models.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := s.kv.Set(ctx, PrefixLeaderboard+cacheKey, data); err != nil {
		return fmt.Errorf("save roster %s: %w", cacheKey, err)
	}
	return nil
}

// DeleteRosters drops every cached roster so the next read regenerates
// from scratch.
func (s *Store) DeleteRosters(ctx context.Context) error {
	if err := s.kv.DeletePrefix(ctx, PrefixLeaderboard); err != nil {
		return fmt.Errorf("delete rosters: %w", err)
	}
	return nil
}

// LoadRoster returns an empty slice when no roster is cached for the key.
func (s *Store) LoadRoster(ctx context.Context, cacheKey string) ([]models.LeaderboardEntry, error) {
	data, ok, err := s.kv.Get(ctx, PrefixLeaderboard+cacheKey)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", cacheKey, err)
	}
	if !ok {
		return nil, nil
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding corrupt roster record", "cache_key", cacheKey, "error", err)
		if delErr := s.kv.Delete(ctx, PrefixLeaderboard+cacheKey); delErr != nil {
			return nil, fmt.Errorf("discard corrupt roster %s: %w", cacheKey, delErr)
		}
		return nil, nil
	}
	return entries, nil
}
