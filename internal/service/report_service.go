package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tabsera/recitation-report/internal/models"
)

// RecitationRepository describes the Assignments-side aggregates the report
// needs.
type RecitationRepository interface {
	CountRecitations(ctx context.Context, window models.ReportWindow) (int64, error)
	CountRecitationsByGender(ctx context.Context, window models.ReportWindow, gender models.Gender) (int64, error)
	CountGradedRecitations(ctx context.Context, window models.ReportWindow, gender models.Gender) (int64, error)
	SurahBreakdown(ctx context.Context, window models.ReportWindow) ([]models.SurahGenderStat, error)
	DailyUsers(ctx context.Context, window models.ReportWindow) (models.DailyUsersBreakdown, error)
}

// SubmissionRepository describes the AssignmentPassData-side aggregates.
type SubmissionRepository interface {
	GradedByTeacher(ctx context.Context, window models.ReportWindow) ([]models.TeacherGradeCount, error)
	SubmissionFrequency(ctx context.Context, window models.ReportWindow) (models.SubmissionFrequency, error)
	StatusCounts(ctx context.Context, window models.ReportWindow) (models.StatusCounts, error)
	StatusGenderCounts(ctx context.Context, window models.ReportWindow) (models.StatusGenderBreakdown, error)
}

// ReportService runs the aggregation set for one window and assembles the
// daily report.
type ReportService struct {
	recitations RecitationRepository
	submissions SubmissionRepository
	logger      *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(recitations RecitationRepository, submissions SubmissionRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{recitations: recitations, submissions: submissions, logger: logger}
}

// Generate computes every metric for the window. The aggregations are
// independent reads and fan out concurrently; the first failure cancels the
// rest and aborts the run, so a partial report is never produced.
func (s *ReportService) Generate(ctx context.Context, window models.ReportWindow) (*models.DailyReport, error) {
	report := &models.DailyReport{}
	var surahStats []models.SurahGenderStat

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.recitations.CountRecitations(gctx, window)
		if err != nil {
			return fmt.Errorf("total recitations: %w", err)
		}
		report.TotalRecitations = n
		return nil
	})
	g.Go(func() error {
		n, err := s.recitations.CountRecitationsByGender(gctx, window, models.GenderMale)
		if err != nil {
			return fmt.Errorf("male recitations: %w", err)
		}
		report.TotalMaleRecitations = n
		return nil
	})
	g.Go(func() error {
		n, err := s.recitations.CountRecitationsByGender(gctx, window, models.GenderFemale)
		if err != nil {
			return fmt.Errorf("female recitations: %w", err)
		}
		report.TotalFemaleRecitations = n
		return nil
	})
	g.Go(func() error {
		n, err := s.recitations.CountGradedRecitations(gctx, window, models.GenderMale)
		if err != nil {
			return fmt.Errorf("male graded recitations: %w", err)
		}
		report.MaleGradedRecitations = n
		return nil
	})
	g.Go(func() error {
		n, err := s.recitations.CountGradedRecitations(gctx, window, models.GenderFemale)
		if err != nil {
			return fmt.Errorf("female graded recitations: %w", err)
		}
		report.FemaleGradedRecitations = n
		return nil
	})
	g.Go(func() error {
		counts, err := s.submissions.GradedByTeacher(gctx, window)
		if err != nil {
			return fmt.Errorf("graded by teacher: %w", err)
		}
		report.TotalRecitationsGradedByTeacher = counts
		return nil
	})
	g.Go(func() error {
		users, err := s.recitations.DailyUsers(gctx, window)
		if err != nil {
			return fmt.Errorf("daily users: %w", err)
		}
		report.TotalDailyUsers = users
		return nil
	})
	g.Go(func() error {
		freq, err := s.submissions.SubmissionFrequency(gctx, window)
		if err != nil {
			return fmt.Errorf("submission frequency: %w", err)
		}
		report.MultiRecitationStudents = freq
		return nil
	})
	g.Go(func() error {
		counts, err := s.submissions.StatusCounts(gctx, window)
		if err != nil {
			return fmt.Errorf("status counts: %w", err)
		}
		report.AssignmentsCategorizedByStatus = counts
		return nil
	})
	g.Go(func() error {
		breakdown, err := s.submissions.StatusGenderCounts(gctx, window)
		if err != nil {
			return fmt.Errorf("status by gender: %w", err)
		}
		report.AssignmentsCategorizedByStatusAndGender = breakdown
		return nil
	})
	g.Go(func() error {
		stats, err := s.recitations.SurahBreakdown(gctx, window)
		if err != nil {
			return fmt.Errorf("surah breakdown: %w", err)
		}
		surahStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.AssignmentsCategorizedBySurah = buildSurahRows(surahStats)
	applyDerivedMetrics(report)

	s.logger.Sugar().Infow("aggregations complete",
		"day", window.FileDate(),
		"total_recitations", report.TotalRecitations,
		"elapsed", time.Since(start),
	)
	return report, nil
}

// applyDerivedMetrics fills the totals and percentage fields. Percentages
// are 0 when there are no recitations in the window.
func applyDerivedMetrics(report *models.DailyReport) {
	report.TotalGradedRecitations = report.MaleGradedRecitations + report.FemaleGradedRecitations
	report.TotalUngradedRecitations = report.TotalRecitations - report.TotalGradedRecitations

	total := report.TotalRecitations
	report.MaleRecitationsAsPercentage = percentage(report.TotalMaleRecitations, total)
	report.FemaleRecitationsAsPercentage = percentage(report.TotalFemaleRecitations, total)
	report.MaleRecitationsGradedAsPercentage = percentage(report.MaleGradedRecitations, total)
	report.FemaleRecitationsGradedAsPercentage = percentage(report.FemaleGradedRecitations, total)
	report.UngradedRecitationsAsPercentage = percentage(report.TotalUngradedRecitations, total)
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// buildSurahRows reshapes the (surah, cohort) stats into one row per surah
// with optional cohort sub-objects, sorted numerically ascending by surah.
func buildSurahRows(stats []models.SurahGenderStat) []models.SurahBreakdownRow {
	bySurah := make(map[string]*models.SurahBreakdownRow, len(stats))
	for _, stat := range stats {
		row, ok := bySurah[stat.Surah]
		if !ok {
			row = &models.SurahBreakdownRow{Surah: stat.Surah}
			bySurah[stat.Surah] = row
		}
		entry := &models.SurahStat{
			Graded:   stat.Graded,
			Ungraded: stat.Ungraded,
			Passed:   stat.Passed,
			Failed:   stat.Failed,
		}
		switch stat.Gender {
		case models.GenderMale:
			row.Male = entry
		case models.GenderFemale:
			row.Female = entry
		}
	}

	rows := make([]models.SurahBreakdownRow, 0, len(bySurah))
	for _, row := range bySurah {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return surahNumber(rows[i].Surah) < surahNumber(rows[j].Surah)
	})
	return rows
}

// surahNumber parses the surah identifier; non-numeric names sort last.
func surahNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		return math.MaxInt
	}
	return n
}
