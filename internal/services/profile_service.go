package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/storage"
	"github.com/khelsetu/assessment-service/internal/validator"
)

// Onboarding defaults.
const (
	startingCoins = 100
	startingLevel = 1
)

// CreateProfileRequest carries the onboarding form fields.
type CreateProfileRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=100"`
	AbhaID         string   `json:"abha_id"`
	Avatar         string   `json:"avatar"`
	PrimarySport   string   `json:"primary_sport" validate:"required"`
	SelectedSports []string `json:"selected_sports" validate:"required,min=1"`
}

// ProfileService owns onboarding, profile reads and the sign-out/reset
// path. Reward mutation of the profile belongs to the engine, not here.
type ProfileService struct {
	store     *storage.Store
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewProfileService(store *storage.Store, logger *slog.Logger, v *validator.Validator) *ProfileService {
	return &ProfileService{
		store:     store,
		logger:    logger,
		validator: v,
		now:       time.Now,
	}
}

// Create onboards a new athlete. It fails when a profile already exists
// under the same id, or when the chosen sports are unknown.
func (s *ProfileService) Create(ctx context.Context, id string, req *CreateProfileRequest) (*models.UserProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if catalog.Sport(req.PrimarySport) == nil {
		return nil, fmt.Errorf("%w: %s", ErrSportNotFound, req.PrimarySport)
	}
	for _, sportID := range req.SelectedSports {
		if catalog.Sport(sportID) == nil {
			return nil, fmt.Errorf("%w: %s", ErrSportNotFound, sportID)
		}
	}

	existing, err := s.store.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := &models.UserProfile{
		ID:             id,
		Name:           req.Name,
		AbhaID:         req.AbhaID,
		Avatar:         req.Avatar,
		PrimarySport:   req.PrimarySport,
		SelectedSports: req.SelectedSports,
		Level:          startingLevel,
		XP:             0,
		Coins:          startingCoins,
		Badges:         []string{},
		PersonalBests:  map[string]int{},
		CreatedAt:      s.now(),
		SchemaVersion:  models.CurrentSchemaVersion,
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("profile created",
		"profile_id", id,
		"name", req.Name,
		"primary_sport", req.PrimarySport)
	return profile, nil
}

// Get loads the profile, or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, err := s.store.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Reset implements sign-out: it deletes the profile, every stored
// attempt belonging to it, and the cached leaderboard rosters so the
// user's entries do not outlive the profile.
func (s *ProfileService) Reset(ctx context.Context, id string) error {
	attempts, err := s.store.ListAttempts(ctx)
	if err != nil {
		return err
	}
	for _, attempt := range attempts {
		if attempt.UserID != id {
			continue
		}
		if err := s.store.DeleteAttempt(ctx, attempt.ID); err != nil {
			return fmt.Errorf("delete attempt %s: %w", attempt.ID, err)
		}
	}

	if err := s.store.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := s.store.DeleteRosters(ctx); err != nil {
		return fmt.Errorf("clear leaderboard caches: %w", err)
	}

	s.logger.Info("profile reset", "profile_id", id)
	return nil
}

// Challenges returns today's quests for the user's primary sport.
func (s *ProfileService) Challenges(ctx context.Context, id string) ([]models.Quest, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return catalog.DailyChallenges(profile.PrimarySport, s.now()), nil
}

// History returns the user's stored attempts, newest first.
func (s *ProfileService) History(ctx context.Context, id string) ([]*models.Attempt, error) {
	attempts, err := s.store.ListAttempts(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Attempt
	for _, attempt := range attempts {
		if attempt.UserID == id {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
