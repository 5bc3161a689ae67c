package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsColumnOrder(t *testing.T) {
	data := Dataset{
		Headers: []string{"surah", "gender", "graded"},
		Rows: [][]string{
			{"2", "male", "5"},
			{"114", "female", "0"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "surah,gender,graded\n2,male,5\n114,female,0\n", string(out))
}

func TestCSVRenderQuotesEmbeddedCommas(t *testing.T) {
	data := Dataset{
		Headers: []string{"teacher", "count"},
		Rows:    [][]string{{"Omar, Asha", "9"}},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "teacher,count\n\"Omar, Asha\",9\n", string(out))
}

func TestCSVRenderRejectsRaggedRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"surah", "graded"},
		Rows:    [][]string{{"2"}},
	}

	out, err := NewCSVExporter().Render(data)
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
