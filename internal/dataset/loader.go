// Package dataset turns a raw exam export into the frame the analysis and
// report layers consume.
package dataset

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/parser"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/types"
)

// Result is a fully prepared dataset: parsed records plus the frame with
// mapped subject names and the Total column.
type Result struct {
	Records []types.StudentRecord
	Frame   *table.Frame
	Skipped int
}

// Load reads and parses an export file.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return FromText(string(data))
}

// FromText parses raw export text. An export from which no student parses
// is an error; partially parseable input is not.
func FromText(text string) (*Result, error) {
	res := parser.ParseText(text)
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("no students parsed (%d record pairs skipped)", res.Skipped)
	}
	f := buildFrame(res.Records)
	table.MapSubjectNames(f)
	table.AddTotal(f)
	return &Result{Records: res.Records, Frame: f, Skipped: res.Skipped}, nil
}

func buildFrame(records []types.StudentRecord) *table.Frame {
	cols := []string{table.ColRoll, table.ColName, table.ColGender}
	for i := 1; i <= types.MaxSubjects; i++ {
		cols = append(cols,
			fmt.Sprintf("Subject%d_Marks", i),
			fmt.Sprintf("Subject%d_Grade", i))
	}
	f := table.New(cols...)
	for _, rec := range records {
		row := []string{rec.RollNumber, rec.Name, rec.Gender}
		for i := 0; i < types.MaxSubjects; i++ {
			marks, grade := "", ""
			if i < len(rec.Scores) {
				if rec.Scores[i].HasMarks {
					marks = strconv.Itoa(rec.Scores[i].Marks)
				}
				grade = rec.Scores[i].Grade
			}
			row = append(row, marks, grade)
		}
		f.Append(row...)
	}
	return f
}
