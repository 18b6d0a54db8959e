package dataset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

const sampleExport = `1001 M JOHN SHARMA 041 042 043 044 045
085 A2 071 B1 060 B2 093 A1 056 C1
1002 F ASHA VERMA 041 042 043 044 045
078 B1 088 A2 095 A1 067 B2 072 B1
1003 M RAVI KUMAR 041 042 043 044 045
045 C2 052 C1 048 C2 059 C1 061 B2
`

func TestFromText(t *testing.T) {
	res, err := FromText(sampleExport)
	require.NoError(t, err)

	assert.Len(t, res.Records, 3)
	assert.Equal(t, 0, res.Skipped)
	require.Equal(t, 3, res.Frame.Len())

	// subject names mapped and total appended
	assert.True(t, res.Frame.HasColumn("ENG"))
	assert.True(t, res.Frame.HasColumn("SOC GRADE"))
	assert.True(t, res.Frame.HasColumn(table.ColTotal))

	assert.Equal(t, "365", res.Frame.Cell(0, table.ColTotal))
	assert.Equal(t, "400", res.Frame.Cell(1, table.ColTotal))
	assert.Equal(t, "265", res.Frame.Cell(2, table.ColTotal))
}

func TestFromTextRejectsUnparseable(t *testing.T) {
	_, err := FromText("garbage\nmore garbage\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no students parsed")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Frame.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	res, err := FromText(sampleExport)
	require.NoError(t, err)

	sum := Summarize(res)
	assert.Equal(t, 3, sum.TotalStudents)
	assert.Equal(t, map[string]int{"M": 2, "F": 1}, sum.GenderCounts)

	// ENG average of 85, 78, 45
	require.Contains(t, sum.SubjectAverages, "ENG")
	assert.InDelta(t, (85.0+78.0+45.0)/3, sum.SubjectAverages["ENG"], 1e-9)

	require.Contains(t, sum.GradeCounts, "MATH")
	require.NotNil(t, sum.TopScorer)
	assert.Equal(t, "ASHA VERMA", sum.TopScorer.Name)
	require.NotNil(t, sum.TopScorer.Total)
	assert.Equal(t, 400.0, *sum.TopScorer.Total)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://example.com/results.txt"))
	assert.True(t, IsURL("HTTPS://example.com/results.txt"))
	assert.False(t, IsURL("results.txt"))
	assert.False(t, IsURL("/data/results.txt"))
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	text, err := Fetch(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, sampleExport, text)
	assert.Equal(t, 3, attempts)
}

func TestFetchClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	res, err := LoadURL(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Frame.Len())
}
