package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/types"
)

var (
	// roll, gender, name; name stops before the first 3-digit subject code
	identityRegex = regexp.MustCompile(`^(\d+)\s+([MF])\s+(.+?)\s+\d{3}`)
	// fallback when the subject codes are missing from the identity line
	identityLooseRegex = regexp.MustCompile(`^(\d+)\s+([MF])\s+(.+)$`)
	// repeated marks+grade pairs on the second line
	marksGradeRegex = regexp.MustCompile(`(\d{2,3})\s+([A-D][12])`)

	nonDigitRegex = regexp.MustCompile(`\D`)
)

// Result carries whatever parsed plus a count of record pairs that did not
// match either identity pattern.
type Result struct {
	Records []types.StudentRecord
	Skipped int
}

// ParseLines parses a CBSE-style two-line-per-student export. Empty lines are
// dropped first, then surviving lines are consumed in strict pairs. Malformed
// pairs are skipped, never fatal.
func ParseLines(lines []string) Result {
	clean := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			clean = append(clean, ln)
		}
	}

	var res Result
	for i := 0; i+1 < len(clean); i += 2 {
		rec, ok := parsePair(clean[i], clean[i+1])
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// ParseText splits raw text into lines and parses it.
func ParseText(text string) Result {
	return ParseLines(strings.Split(text, "\n"))
}

func parsePair(identity, marks string) (types.StudentRecord, bool) {
	m := identityRegex.FindStringSubmatch(identity)
	if m == nil {
		m = identityLooseRegex.FindStringSubmatch(identity)
		if m == nil {
			return types.StudentRecord{}, false
		}
	}

	rec := types.StudentRecord{
		RollNumber: m[1],
		Gender:     m[2],
		Name:       strings.TrimSpace(m[3]),
	}

	for _, pair := range marksGradeRegex.FindAllStringSubmatch(marks, -1) {
		if len(rec.Scores) == types.MaxSubjects {
			break
		}
		score := types.SubjectScore{Grade: pair[2]}
		if v, err := strconv.Atoi(nonDigitRegex.ReplaceAllString(pair[1], "")); err == nil {
			score.Marks = v
			score.HasMarks = true
		}
		rec.Scores = append(rec.Scores, score)
	}
	return rec, true
}
