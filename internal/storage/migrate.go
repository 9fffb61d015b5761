package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/khelsetu/assessment-service/internal/models"
)

// profileMigrations is the versioned upgrade chain: index N-1 transforms a
// raw record from schema version N to N+1. Migration is strictly
// single-step and forward-only.
var profileMigrations = []func(map[string]json.RawMessage) error{
	migrateProfileV1toV2,
}

// migrateProfile decodes a stored profile, walking it through the upgrade
// chain when its schema version is behind. The second return reports
// whether any migration step ran and the record needs rewriting.
func migrateProfile(data []byte) (*models.UserProfile, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("decode profile: %w", err)
	}

	version := 1
	if v, ok := raw["schema_version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return nil, false, fmt.Errorf("decode schema version: %w", err)
		}
	}

	if version > models.CurrentSchemaVersion {
		return nil, false, fmt.Errorf("%w: stored %d, supported %d",
			ErrFutureSchema, version, models.CurrentSchemaVersion)
	}

	migrated := false
	for version < models.CurrentSchemaVersion {
		if err := profileMigrations[version-1](raw); err != nil {
			return nil, false, fmt.Errorf("migrate profile v%d: %w", version, err)
		}
		version++
		setRawInt(raw, "schema_version", version)
		migrated = true
	}

	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, false, fmt.Errorf("re-encode profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(merged, &profile); err != nil {
		return nil, false, fmt.Errorf("decode migrated profile: %w", err)
	}
	return &profile, migrated, nil
}

// migrateProfileV1toV2 renames the v1 skill_points field to xp and fills
// in the progress fields introduced with v2.
func migrateProfileV1toV2(raw map[string]json.RawMessage) error {
	if sp, ok := raw["skill_points"]; ok {
		raw["xp"] = sp
		delete(raw, "skill_points")
	}
	if _, ok := raw["xp"]; !ok {
		setRawInt(raw, "xp", 0)
	}
	if _, ok := raw["personal_bests"]; !ok {
		raw["personal_bests"] = json.RawMessage(`{}`)
	}
	if _, ok := raw["total_assessments"]; !ok {
		setRawInt(raw, "total_assessments", 0)
	}
	if _, ok := raw["quests_completed"]; !ok {
		setRawInt(raw, "quests_completed", 0)
	}
	if _, ok := raw["last_active_date"]; !ok {
		ts, err := json.Marshal(time.Now())
		if err != nil {
			return err
		}
		raw["last_active_date"] = ts
	}
	return nil
}

func setRawInt(raw map[string]json.RawMessage, key string, value int) {
	raw[key] = json.RawMessage(fmt.Sprintf("%d", value))
}
