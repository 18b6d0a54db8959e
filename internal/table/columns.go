package table

import (
	"math"
	"strconv"
	"strings"
)

// Identity columns every export carries.
const (
	ColRoll   = "Roll Number"
	ColName   = "Name"
	ColGender = "Gender"
	ColTotal  = "Total"
)

// DefaultSubjectMapping renames the positional Subject1..Subject5 columns to
// the conventional CBSE subject names.
func DefaultSubjectMapping() map[string]string {
	return map[string]string{
		"Subject1_Marks": "ENG",
		"Subject1_Grade": "ENG GRADE",
		"Subject2_Marks": "LANG II",
		"Subject2_Grade": "LANG II GRADE",
		"Subject3_Marks": "MATH",
		"Subject3_Grade": "MATH GRADE",
		"Subject4_Marks": "SCI",
		"Subject4_Grade": "SCI GRADE",
		"Subject5_Marks": "SOC",
		"Subject5_Grade": "SOC GRADE",
	}
}

// MapSubjectNames applies DefaultSubjectMapping in place.
func MapSubjectNames(f *Frame) {
	f.Rename(DefaultSubjectMapping())
}

// MarkColumns guesses which columns hold subject marks: a name ending in
// MARKS, or a numeric column that is neither an identity column nor a grade
// or total column. Falls back to the known mapped names when nothing
// matches.
func MarkColumns(f *Frame) []string {
	var out []string
	for _, c := range f.Columns() {
		u := strings.ToUpper(c)
		switch {
		case strings.HasSuffix(u, "MARKS"):
			out = append(out, c)
		case c == ColRoll || c == ColName || c == ColGender || c == ColTotal:
		case strings.Contains(u, "GRADE"):
		case f.isNumeric(c):
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		candidates := []string{"ENG", "LANG II", "MATH", "SCI", "SOC", "Subject1_Marks"}
		for _, c := range candidates {
			if f.HasColumn(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// GradeColumnFor guesses the grade column belonging to a mark column:
// exact "<subject> GRADE" first, then any GRADE column sharing the
// subject's first token. Returns "" when nothing matches.
func GradeColumnFor(f *Frame, subject string) string {
	exact := subject + " GRADE"
	if f.HasColumn(exact) {
		return exact
	}
	token := subject
	if fields := strings.Fields(subject); len(fields) > 0 {
		token = fields[0]
	}
	token = strings.ToLower(token)
	for _, c := range f.Columns() {
		if strings.Contains(strings.ToUpper(c), "GRADE") &&
			strings.Contains(strings.ToLower(c), token) {
			return c
		}
	}
	return ""
}

// AddTotal appends a Total column summing the mark columns per row, missing
// marks skipped. Rows with no marks at all get an empty cell.
func AddTotal(f *Frame) {
	marks := MarkColumns(f)
	series := make([][]float64, len(marks))
	for i, c := range marks {
		series[i] = f.Numeric(c)
	}
	totals := make([]string, f.Len())
	for r := 0; r < f.Len(); r++ {
		sum, any := 0.0, false
		for i := range series {
			if !math.IsNaN(series[i][r]) {
				sum += series[i][r]
				any = true
			}
		}
		if any {
			totals[r] = strconv.FormatFloat(sum, 'f', -1, 64)
		}
	}
	_ = f.AddColumn(ColTotal, totals)
}
