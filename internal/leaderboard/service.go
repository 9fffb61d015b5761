// Package leaderboard deterministically synthesizes per-sport competitor
// rosters and merges the live user's scores into them.
package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/simulate"
	"github.com/khelsetu/assessment-service/internal/storage"
)

const (
	// RosterSize is the number of synthesized competitors per sport.
	RosterSize = 50

	// RivalMargin is the maximum score distance from the viewer's
	// personal best for an entry to count as a rival.
	RivalMargin = 5
)

type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeAllTime Timeframe = "all-time"
)

// Service generates, caches and re-ranks leaderboard rosters. Rosters
// are synthesized once per (sport, timeframe) from a seed derived from
// the sport id, then cached in the store; rank is always recomputed
// after a resort, never trusted from storage.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func New(store *storage.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func cacheKey(sportID string, timeframe Timeframe) string {
	return fmt.Sprintf("%s_%s", sportID, timeframe)
}

// Get returns the roster for a sport, generating and caching it on first
// read. When a viewer is supplied, entries within RivalMargin of the
// viewer's personal best for the sport are flagged as rivals.
func (s *Service) Get(ctx context.Context, sportID string, timeframe Timeframe, viewer *models.UserProfile) ([]models.LeaderboardEntry, error) {
	entries, err := s.loadOrGenerate(ctx, sportID, timeframe)
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		best := viewer.PersonalBests[sportID]
		for i := range entries {
			delta := entries[i].Score - best
			if delta < 0 {
				delta = -delta
			}
			entries[i].IsRival = delta <= RivalMargin
		}
	}

	return entries, nil
}

// UpdateUserScore removes any existing entry for the user, inserts a
// fresh one with the given score, and recomputes ranks for the whole
// roster.
func (s *Service) UpdateUserScore(ctx context.Context, sportID string, user *models.UserProfile, score int) error {
	entries, err := s.loadOrGenerate(ctx, sportID, TimeframeAllTime)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.UserID != user.ID {
			kept = append(kept, entry)
		}
	}

	kept = append(kept, models.LeaderboardEntry{
		UserID:    user.ID,
		Username:  user.Name,
		Avatar:    user.Avatar,
		Score:     score,
		Sport:     sportID,
		Timestamp: s.now(),
	})

	rerank(kept)

	if err := s.store.SaveRoster(ctx, cacheKey(sportID, TimeframeAllTime), kept); err != nil {
		return fmt.Errorf("save updated roster: %w", err)
	}

	s.logger.Info("leaderboard updated",
		"sport_id", sportID,
		"user_id", user.ID,
		"score", score)
	return nil
}

// UserRank returns the user's 1-based rank, or 0 when absent.
func (s *Service) UserRank(ctx context.Context, sportID, userID string) (int, error) {
	entries, err := s.Get(ctx, sportID, TimeframeAllTime, nil)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.UserID == userID {
			return entry.Rank, nil
		}
	}
	return 0, nil
}

// TopPlayers returns the first limit entries of the all-time roster.
func (s *Service) TopPlayers(ctx context.Context, sportID string, limit int, viewer *models.UserProfile) ([]models.LeaderboardEntry, error) {
	entries, err := s.Get(ctx, sportID, TimeframeAllTime, viewer)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Rivals returns up to limit rival entries for the viewer, excluding the
// viewer's own row.
func (s *Service) Rivals(ctx context.Context, sportID string, viewer *models.UserProfile, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := s.Get(ctx, sportID, TimeframeAllTime, viewer)
	if err != nil {
		return nil, err
	}

	var rivals []models.LeaderboardEntry
	for _, entry := range entries {
		if entry.IsRival && entry.UserID != viewer.ID {
			rivals = append(rivals, entry)
			if limit > 0 && len(rivals) == limit {
				break
			}
		}
	}
	return rivals, nil
}

func (s *Service) loadOrGenerate(ctx context.Context, sportID string, timeframe Timeframe) ([]models.LeaderboardEntry, error) {
	key := cacheKey(sportID, timeframe)
	entries, err := s.store.LoadRoster(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	entries = s.generate(sportID)
	if err := s.store.SaveRoster(ctx, key, entries); err != nil {
		return nil, fmt.Errorf("cache generated roster: %w", err)
	}

	s.logger.Info("generated leaderboard roster", "sport_id", sportID, "size", len(entries))
	return entries, nil
}

// generate synthesizes the fixed-size roster for a sport. The generator
// is seeded solely by the sport id, so the roster is stable across runs.
func (s *Service) generate(sportID string) []models.LeaderboardEntry {
	rnd := simulate.NewRand(simulate.HashString(sportID))
	now := s.now()

	entries := make([]models.LeaderboardEntry, 0, RosterSize)
	for i := 0; i < RosterSize; i++ {
		var nameIdx, avatarIdx, baseScore, variance, daysAgo int
		rnd, nameIdx = rnd.Int(0, len(catalog.AthleteNames)-1)
		rnd, avatarIdx = rnd.Int(0, len(catalog.AthleteAvatars)-1)
		rnd, baseScore = rnd.Int(60, 95)
		rnd, variance = rnd.Int(-5, 5)
		rnd, daysAgo = rnd.Int(0, 30)

		score := baseScore + variance
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		entries = append(entries, models.LeaderboardEntry{
			UserID:    fmt.Sprintf("user_%s_%d", sportID, i),
			Username:  catalog.AthleteNames[nameIdx],
			Avatar:    catalog.AthleteAvatars[avatarIdx],
			Score:     score,
			Sport:     sportID,
			Timestamp: now.AddDate(0, 0, -daysAgo),
		})
	}

	rerank(entries)
	return entries
}

// rerank sorts descending by score and assigns sequential 1-based ranks.
// Ties keep their generation/insertion order.
func rerank(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
