// Package export produces downloadable workbook reports of a user's
// assessment history.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/models"
)

// HistorySource supplies the data the report is built from.
type HistorySource interface {
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	History(ctx context.Context, id string) ([]*models.Attempt, error)
}

// Service writes assessment reports as xlsx workbooks.
type Service struct {
	source HistorySource
	logger *slog.Logger
}

func New(source HistorySource, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// WriteReport streams a two-sheet workbook (profile summary, attempt
// history) for the user to w.
func (s *Service) WriteReport(ctx context.Context, userID string, w io.Writer) error {
	profile, err := s.source.Get(ctx, userID)
	if err != nil {
		return err
	}
	attempts, err := s.source.History(ctx, userID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeProfileSheet(f, profile); err != nil {
		return err
	}
	if err := s.writeAttemptsSheet(f, attempts); err != nil {
		return err
	}

	// Drop the default sheet excelize starts with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("exported assessment report",
		"user_id", userID,
		"attempts", len(attempts))
	return nil
}

func (s *Service) writeProfileSheet(f *excelize.File, profile *models.UserProfile) error {
	const sheet = "Profile"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create profile sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Name", profile.Name},
		{"Primary Sport", profile.PrimarySport},
		{"Level", profile.Level},
		{"XP", profile.XP},
		{"Coins", profile.Coins},
		{"Streak Days", profile.StreakDays},
		{"Total Assessments", profile.TotalAssessments},
		{"Badges", len(profile.Badges)},
		{"Member Since", profile.CreatedAt.Format("2006-01-02")},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) writeAttemptsSheet(f *excelize.File, attempts []*models.Attempt) error {
	const sheet = "Attempts"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create attempts sheet: %w", err)
	}

	headers := []string{"Attempt ID", "Test", "State", "Score", "XP Earned", "Coins Earned", "Started", "Ended"}
	for j, header := range headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, attempt := range attempts {
		testName := attempt.TestID
		if spec := catalog.TestSpec(attempt.TestID); spec != nil {
			testName = spec.Name
		}

		row := []interface{}{
			attempt.ID,
			testName,
			string(attempt.State),
			intCell(attempt.Score),
			intCell(attempt.XPEarned),
			intCell(attempt.CoinsEarned),
			attempt.StartTime.Format(time.RFC3339),
			timeCell(attempt.EndTime),
		}
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func intCell(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func timeCell(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
