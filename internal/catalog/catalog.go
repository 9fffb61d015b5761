// Package catalog holds the static, read-only content loaded at startup:
// sports, test specifications, badges, avatars and daily challenges.
package catalog

import (
	"github.com/khelsetu/assessment-service/internal/models"
)

// TestSpec looks up a test by id, or nil.
func TestSpec(id string) *models.TestSpec {
	for i := range allTests {
		if allTests[i].ID == id {
			return &allTests[i]
		}
	}
	return nil
}

// TestsForSport returns every test belonging to a sport.
func TestsForSport(sportID string) []models.TestSpec {
	var out []models.TestSpec
	for _, t := range allTests {
		if t.SportID == sportID {
			out = append(out, t)
		}
	}
	return out
}

// AllTests returns the full test catalog.
func AllTests() []models.TestSpec {
	out := make([]models.TestSpec, len(allTests))
	copy(out, allTests)
	return out
}

// Sport looks up a sport by id, or nil.
func Sport(id string) *models.Sport {
	for i := range sports {
		if sports[i].ID == id {
			return &sports[i]
		}
	}
	return nil
}

// Sports returns the sport catalog.
func Sports() []models.Sport {
	out := make([]models.Sport, len(sports))
	copy(out, sports)
	return out
}

// Badge looks up a badge by id, or nil.
func Badge(id string) *models.Badge {
	for i := range badges {
		if badges[i].ID == id {
			return &badges[i]
		}
	}
	return nil
}
