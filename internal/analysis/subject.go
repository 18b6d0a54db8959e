package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

// TopBottomN is how many scorers each end of a subject table keeps.
const TopBottomN = 10

// ScoreRow is one student's entry in a subject table. Marks is nil when the
// student's marks were missing or unparseable.
type ScoreRow struct {
	Name       string   `json:"name"`
	RollNumber string   `json:"roll_number"`
	Marks      *float64 `json:"marks"`
	Grade      string   `json:"grade,omitempty"`
}

type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// SubjectReport is the full analysis of one mark column.
type SubjectReport struct {
	Subject     string       `json:"subject"`
	GradeColumn string       `json:"grade_column,omitempty"`
	Stats       *Stats       `json:"stats"`
	Top         []ScoreRow   `json:"top"`
	Bottom      []ScoreRow   `json:"bottom"`
	GradeCounts []GradeCount `json:"grade_counts,omitempty"`
}

// AnalyzeSubject builds the report for one subject's mark column, guessing
// the matching grade column from naming conventions.
func AnalyzeSubject(f *table.Frame, subject string) (*SubjectReport, error) {
	if !f.HasColumn(subject) {
		return nil, fmt.Errorf("no column %q in frame (have %s)", subject, strings.Join(f.Columns(), ", "))
	}
	gradeCol := table.GradeColumnFor(f, subject)

	rep := &SubjectReport{Subject: subject, GradeColumn: gradeCol}
	rep.Stats = Describe(f.Numeric(subject))
	rep.Top, rep.Bottom = topBottom(f, subject, gradeCol)
	if gradeCol != "" {
		rep.GradeCounts = CountGrades(f, gradeCol)
	}
	return rep, nil
}

// AnalyzeTotal reports over the Total column; there is no grade column.
func AnalyzeTotal(f *table.Frame) (*SubjectReport, error) {
	return AnalyzeSubject(f, table.ColTotal)
}

// Ranked is one row of the overall ranking, 1-based by descending total.
type Ranked struct {
	Rank       int      `json:"rank"`
	Name       string   `json:"name"`
	RollNumber string   `json:"roll_number"`
	Total      *float64 `json:"total"`
}

// Ranking sorts every student by total marks descending; students with no
// total sort last but still receive a rank.
func Ranking(f *table.Frame) []Ranked {
	totals := f.Numeric(table.ColTotal)
	out := make([]Ranked, f.Len())
	for r := 0; r < f.Len(); r++ {
		out[r] = Ranked{
			Name:       f.Cell(r, table.ColName),
			RollNumber: f.Cell(r, table.ColRoll),
			Total:      numPtr(totals[r]),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return ptrLess(out[j].Total, out[i].Total) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func topBottom(f *table.Frame, markCol, gradeCol string) (top, bottom []ScoreRow) {
	marks := f.Numeric(markCol)
	rows := make([]ScoreRow, f.Len())
	for r := 0; r < f.Len(); r++ {
		rows[r] = ScoreRow{
			Name:       f.Cell(r, table.ColName),
			RollNumber: f.Cell(r, table.ColRoll),
			Marks:      numPtr(marks[r]),
		}
		if gradeCol != "" {
			rows[r].Grade = f.Cell(r, gradeCol)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return ptrLess(rows[j].Marks, rows[i].Marks) })

	n := TopBottomN
	if n > len(rows) {
		n = len(rows)
	}
	top = append(top, rows[:n]...)
	bottom = append(bottom, rows[len(rows)-n:]...)
	return top, bottom
}

// CountGrades tallies the non-empty grades of a grade column, sorted by
// grade label.
func CountGrades(f *table.Frame, gradeCol string) []GradeCount {
	counts := map[string]int{}
	for r := 0; r < f.Len(); r++ {
		if g := f.Cell(r, gradeCol); g != "" {
			counts[g]++
		}
	}
	out := make([]GradeCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GradeCount{Grade: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Grade < out[j].Grade })
	return out
}

func numPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// ptrLess orders nil (missing) below any value.
func ptrLess(a, b *float64) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}
