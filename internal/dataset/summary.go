package dataset

import (
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/logger"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

// Summary is the compact dataset overview served by the dashboard and
// written to the Summary sheet of the report.
type Summary struct {
	TotalStudents   int                              `json:"total_students"`
	SkippedRecords  int                              `json:"skipped_records"`
	GenderCounts    map[string]int                   `json:"gender_counts"`
	SubjectAverages map[string]float64               `json:"subject_averages"`
	GradeCounts     map[string][]analysis.GradeCount `json:"grade_counts"`
	TopScorer       *analysis.Ranked                 `json:"top_scorer,omitempty"`
}

// Summarize aggregates the dataset in one pass per concern.
func Summarize(res *Result) Summary {
	log := logger.New().WithComponent("dataset.summary")

	f := res.Frame
	sum := Summary{
		TotalStudents:   f.Len(),
		SkippedRecords:  res.Skipped,
		GenderCounts:    map[string]int{},
		SubjectAverages: map[string]float64{},
		GradeCounts:     map[string][]analysis.GradeCount{},
	}

	for r := 0; r < f.Len(); r++ {
		if g := f.Cell(r, table.ColGender); g != "" {
			sum.GenderCounts[g]++
		}
	}

	for _, subject := range table.MarkColumns(f) {
		if st := analysis.Describe(f.Numeric(subject)); st != nil {
			sum.SubjectAverages[subject] = st.Mean
		}
		if gradeCol := table.GradeColumnFor(f, subject); gradeCol != "" {
			if counts := analysis.CountGrades(f, gradeCol); len(counts) > 0 {
				sum.GradeCounts[subject] = counts
			}
		}
	}

	if ranking := analysis.Ranking(f); len(ranking) > 0 && ranking[0].Total != nil {
		top := ranking[0]
		sum.TopScorer = &top
	}

	log.WithField("total_students", sum.TotalStudents).
		WithField("subjects", len(sum.SubjectAverages)).
		Info("dataset summarized")
	return sum
}
