package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func assertPNG(t *testing.T, b []byte) {
	t.Helper()
	require.Greater(t, len(b), 8)
	assert.Equal(t, pngMagic, b[:4])
}

func TestGradePie(t *testing.T) {
	png, err := GradePie("MATH", []analysis.GradeCount{
		{Grade: "A1", Count: 4},
		{Grade: "B1", Count: 7},
		{Grade: "C2", Count: 2},
	})
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestGradePieEmpty(t *testing.T) {
	_, err := GradePie("MATH", nil)
	assert.Error(t, err)
}

func TestMarksHistogram(t *testing.T) {
	png, err := MarksHistogram("ENG", []float64{85, 71, 60, 93, 56, 40, 77, 68, 91, 52})
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestMarksHistogramEmpty(t *testing.T) {
	_, err := MarksHistogram("ENG", nil)
	assert.Error(t, err)
}

func TestMarksBoxPlot(t *testing.T) {
	png, err := MarksBoxPlot("SCI", []float64{85, 71, 60, 93, 56})
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestTopBottomBar(t *testing.T) {
	m1, m2 := 95.0, 42.0
	png, err := TopBottomBar("SOC", []analysis.ScoreRow{
		{Name: "Asha Verma", Marks: &m1, Grade: "A1"},
		{Name: "Ravi Kumar", Marks: &m2, Grade: "C2"},
		{Name: "Meena Iyer"}, // missing marks, skipped
	})
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestTopBottomBarAllMissing(t *testing.T) {
	_, err := TopBottomBar("SOC", []analysis.ScoreRow{{Name: "Meena Iyer"}})
	assert.Error(t, err)
}
