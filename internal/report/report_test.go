package report

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/dataset"
)

const sampleExport = `1001 M JOHN SHARMA 041 042 043 044 045
085 A2 071 B1 060 B2 093 A1 056 C1
1002 F ASHA VERMA 041 042 043 044 045
078 B1 088 A2 095 A1 067 B2 072 B1
1003 M RAVI KUMAR 041 042 043 044 045
045 C2 052 C1 048 C2 059 C1 061 B2
`

func loadSample(t *testing.T) *dataset.Result {
	t.Helper()
	res, err := dataset.FromText(sampleExport)
	require.NoError(t, err)
	return res
}

func TestBuildFullSheets(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	sheets := wb.GetSheetList()
	for _, want := range []string{
		"All Data", "Summary",
		"ENG", "ENG Charts",
		"LANG II", "LANG II Charts",
		"MATH", "MATH Charts",
		"SCI", "SCI Charts",
		"SOC", "SOC Charts",
		"Total", "Total Charts",
		"Ranking",
	} {
		assert.Contains(t, sheets, want)
	}
}

func TestBuildFullAllDataSheet(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	v, err := wb.GetCellValue("All Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Roll Number", v)

	v, err = wb.GetCellValue("All Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "JOHN SHARMA", v)

	rows, err := wb.GetRows("All Data")
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + 3 students
}

func TestBuildFullRankingSheet(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	name, err := wb.GetCellValue("Ranking", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ASHA VERMA", name)

	total, err := wb.GetCellValue("Ranking", "D2")
	require.NoError(t, err)
	assert.Equal(t, "400", total)
}

func TestBuildFullSubjectSheetStats(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	label, err := wb.GetCellValue("MATH", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Mean", label)

	cell, err := wb.GetCellValue("MATH", "B2")
	require.NoError(t, err)
	mean, err := strconv.ParseFloat(cell, 64)
	require.NoError(t, err)
	// MATH marks are 60, 95, 48
	assert.InDelta(t, 203.0/3, mean, 1e-6)
}

func TestBuildFullEmbedsCharts(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	pics, err := wb.GetPictures("MATH Charts", "A1")
	require.NoError(t, err)
	assert.NotEmpty(t, pics)
}

func TestBuildSubject(t *testing.T) {
	wb, err := BuildSubject(loadSample(t), "MATH")
	require.NoError(t, err)

	sheets := wb.GetSheetList()
	assert.Contains(t, sheets, "All Data")
	assert.Contains(t, sheets, "MATH")
	assert.Contains(t, sheets, "MATH Charts")
	assert.NotContains(t, sheets, "ENG")
}

func TestBuildSubjectUnknown(t *testing.T) {
	_, err := BuildSubject(loadSample(t), "PHYSICS")
	assert.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	wb, err := BuildFull(loadSample(t))
	require.NoError(t, err)

	b, err := Bytes(wb)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	reopened, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer reopened.Close()
	assert.Contains(t, reopened.GetSheetList(), "Summary")
}

func TestSheetNameCap(t *testing.T) {
	long := "a very long subject column name over the limit"
	assert.Len(t, sheetName(long), maxSheetName)
	assert.Equal(t, "MATH", sheetName("MATH"))
}
