package types

// StudentRecord is one parsed two-line exam record.
type StudentRecord struct {
	RollNumber string         `json:"roll_number"`
	Name       string         `json:"name"`
	Gender     string         `json:"gender"`
	Scores     []SubjectScore `json:"scores"`
}

// SubjectScore holds marks and grade for one subject position (1..5).
// HasMarks is false when the marks token could not be converted.
type SubjectScore struct {
	Marks    int    `json:"marks"`
	HasMarks bool   `json:"has_marks"`
	Grade    string `json:"grade"`
}

// MaxSubjects is fixed by the export format: five subjects per student.
const MaxSubjects = 5
