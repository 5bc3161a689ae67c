package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderProducesDocument(t *testing.T) {
	summary := []SummaryLine{
		{Label: "Total recitations", Value: "10"},
		{Label: "Graded", Value: "7"},
	}
	table := Dataset{
		Headers: []string{"surah", "graded"},
		Rows:    [][]string{{"2", "5"}, {"114", "1"}},
	}

	out, err := NewPDFExporter().Render("Daily Recitation Report", summary, table)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFRenderWithoutTable(t *testing.T) {
	out, err := NewPDFExporter().Render("Summary Only", []SummaryLine{{Label: "Total", Value: "0"}}, Dataset{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFRenderRejectsRaggedRows(t *testing.T) {
	table := Dataset{
		Headers: []string{"surah", "graded"},
		Rows:    [][]string{{"2"}},
	}

	out, err := NewPDFExporter().Render("", nil, table)
	require.Error(t, err)
	assert.Nil(t, out)
}
