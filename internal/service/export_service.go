package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tabsera/recitation-report/internal/models"
	"github.com/tabsera/recitation-report/pkg/export"
	"github.com/tabsera/recitation-report/pkg/storage"
)

// ExportService renders the assembled report into its on-disk formats. JSON
// is the canonical output; CSV and PDF are optional extra renderings of the
// same snapshot.
type ExportService struct {
	store  *storage.LocalStorage
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(store *storage.LocalStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:  store,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// WriteJSON serializes the report with 2-space indentation to
// data-DD-MM-YYYY.json and returns the written path.
func (s *ExportService) WriteJSON(report *models.DailyReport, window models.ReportWindow) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path, err := s.store.Save(fmt.Sprintf("data-%s.json", window.FileDate()), data)
	if err != nil {
		return "", err
	}
	s.logger.Sugar().Infow("report written", "path", path, "bytes", len(data))
	return path, nil
}

// WriteCSV renders the per-surah breakdown to data-DD-MM-YYYY-surahs.csv.
func (s *ExportService) WriteCSV(report *models.DailyReport, window models.ReportWindow) (string, error) {
	data, err := s.csv.Render(surahDataset(report))
	if err != nil {
		return "", err
	}
	path, err := s.store.Save(fmt.Sprintf("data-%s-surahs.csv", window.FileDate()), data)
	if err != nil {
		return "", err
	}
	s.logger.Sugar().Infow("csv export written", "path", path)
	return path, nil
}

// WritePDF renders a printable summary sheet to data-DD-MM-YYYY.pdf.
func (s *ExportService) WritePDF(report *models.DailyReport, window models.ReportWindow) (string, error) {
	title := fmt.Sprintf("Daily Recitation Report %s", window.FileDate())
	data, err := s.pdf.Render(title, summaryLines(report), surahDataset(report))
	if err != nil {
		return "", err
	}
	path, err := s.store.Save(fmt.Sprintf("data-%s.pdf", window.FileDate()), data)
	if err != nil {
		return "", err
	}
	s.logger.Sugar().Infow("pdf export written", "path", path)
	return path, nil
}

// surahDataset flattens the surah rows into one table row per (surah,
// cohort) pair with data.
func surahDataset(report *models.DailyReport) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"surah", "gender", "graded", "ungraded", "passed", "failed"},
	}
	for _, row := range report.AssignmentsCategorizedBySurah {
		if row.Male != nil {
			dataset.Rows = append(dataset.Rows, surahCSVRow(row.Surah, models.GenderMale, row.Male))
		}
		if row.Female != nil {
			dataset.Rows = append(dataset.Rows, surahCSVRow(row.Surah, models.GenderFemale, row.Female))
		}
	}
	return dataset
}

func surahCSVRow(surah string, gender models.Gender, stat *models.SurahStat) []string {
	return []string{
		surah,
		string(gender),
		strconv.FormatInt(stat.Graded, 10),
		strconv.FormatInt(stat.Ungraded, 10),
		strconv.FormatInt(stat.Passed, 10),
		strconv.FormatInt(stat.Failed, 10),
	}
}

func summaryLines(report *models.DailyReport) []export.SummaryLine {
	formatCount := func(n int64) string { return strconv.FormatInt(n, 10) }
	formatPct := func(p float64) string { return strconv.FormatFloat(p, 'f', 1, 64) + "%" }

	return []export.SummaryLine{
		{Label: "Total recitations", Value: formatCount(report.TotalRecitations)},
		{Label: "Male recitations", Value: fmt.Sprintf("%s (%s)", formatCount(report.TotalMaleRecitations), formatPct(report.MaleRecitationsAsPercentage))},
		{Label: "Female recitations", Value: fmt.Sprintf("%s (%s)", formatCount(report.TotalFemaleRecitations), formatPct(report.FemaleRecitationsAsPercentage))},
		{Label: "Graded recitations", Value: formatCount(report.TotalGradedRecitations)},
		{Label: "Ungraded recitations", Value: fmt.Sprintf("%s (%s)", formatCount(report.TotalUngradedRecitations), formatPct(report.UngradedRecitationsAsPercentage))},
		{Label: "New students", Value: formatCount(report.TotalDailyUsers.TotalNew)},
		{Label: "Returning students", Value: formatCount(report.TotalDailyUsers.TotalOld)},
		{Label: "Passed submissions", Value: formatCount(report.AssignmentsCategorizedByStatus.Passed)},
		{Label: "Failed submissions", Value: formatCount(report.AssignmentsCategorizedByStatus.Failed)},
	}
}
