package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tabsera/recitation-report/internal/models"
	"github.com/tabsera/recitation-report/pkg/storage"
)

func testExportService(t *testing.T) (*ExportService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewExportService(store, zap.NewNop()), dir
}

func sampleReport() *models.DailyReport {
	male := &models.SurahStat{Graded: 5, Ungraded: 1, Passed: 4, Failed: 1}
	female := &models.SurahStat{Graded: 2, Ungraded: 2, Passed: 2}
	return &models.DailyReport{
		TotalRecitations:            10,
		TotalMaleRecitations:        6,
		MaleRecitationsAsPercentage: 60,
		AssignmentsCategorizedBySurah: []models.SurahBreakdownRow{
			{Surah: "2", Male: male, Female: female},
			{Surah: "114", Male: male},
		},
	}
}

func TestWriteJSONNamesFileByReportDate(t *testing.T) {
	svc, dir := testExportService(t)
	window := models.ReportWindow{Day: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	path, err := svc.WriteJSON(sampleReport(), window)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data-09-03-2024.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Pretty-printed with two-space indentation.
	assert.Contains(t, string(data), "\n  \"totalRecitations\": 10")

	var decoded models.DailyReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(10), decoded.TotalRecitations)
	require.Len(t, decoded.AssignmentsCategorizedBySurah, 2)
	assert.Nil(t, decoded.AssignmentsCategorizedBySurah[1].Female)
}

func TestWriteJSONOverwritesSameDate(t *testing.T) {
	svc, _ := testExportService(t)
	window := models.ReportWindow{Day: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	first, err := svc.WriteJSON(sampleReport(), window)
	require.NoError(t, err)

	updated := sampleReport()
	updated.TotalRecitations = 11
	second, err := svc.WriteJSON(updated, window)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"totalRecitations\": 11")
}

func TestWriteCSVFlattensSurahRows(t *testing.T) {
	svc, _ := testExportService(t)
	window := models.ReportWindow{Day: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	path, err := svc.WriteCSV(sampleReport(), window)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "data-09-03-2024-surahs.csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4) // header + 2 cohorts of surah 2 + 1 of surah 114
	assert.Equal(t, "surah,gender,graded,ungraded,passed,failed", lines[0])
	assert.Equal(t, "2,male,5,1,4,1", lines[1])
	assert.Equal(t, "2,female,2,2,2,0", lines[2])
	assert.Equal(t, "114,male,5,1,4,1", lines[3])
}

func TestWritePDFProducesDocument(t *testing.T) {
	svc, _ := testExportService(t)
	window := models.ReportWindow{Day: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	path, err := svc.WritePDF(sampleReport(), window)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
