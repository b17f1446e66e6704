package powerschool

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// GradingPeriod is one of the fixed academic sub-terms a course may
// report a grade for.
type GradingPeriod int

const (
	PeriodUnknown GradingPeriod = iota
	Q1
	Q2
	E1
	F1
	Q3
	Q4
	E2
)

var periodNames = map[GradingPeriod]string{
	Q1: "Q1",
	Q2: "Q2",
	E1: "E1",
	F1: "F1",
	Q3: "Q3",
	Q4: "Q4",
	E2: "E2",
}

func (p GradingPeriod) String() string {
	name, ok := periodNames[p]
	if !ok {
		return "??"
	}
	return name
}

// GradeGroupKind is the content state of a grading period cell.
type GradeGroupKind int

const (
	// GradeUnused means the period is not offered for this course, for
	// example the exam column of an every-other-day activity.
	GradeUnused GradeGroupKind = iota
	// GradePlaceholder means the period exists but has no grade yet; the
	// portal renders it as the "[ i ]" sentinel.
	GradePlaceholder
	// GradePopulated means a letter and numeric grade are present.
	GradePopulated
)

// GradeGroup is the record of a course's status within one grading
// period. ScoresHref stores only the data needed to build an assignment
// request later; it does not point back at the owning course.
type GradeGroup struct {
	Period GradingPeriod
	Kind   GradeGroupKind

	// only meaningful when Kind == GradePopulated
	LetterGrade string
	NumberGrade float64

	// relative link to the period's score detail page, prefixed with
	// "guardian/". Empty for unused groups.
	ScoresHref string
}

func (g GradeGroup) String() string {
	if g.Kind != GradePopulated {
		return fmt.Sprintf("empty grade in %s", g.Period)
	}
	return fmt.Sprintf("%s (%v) in %s", g.LetterGrade, g.NumberGrade, g.Period)
}

// Course is one row of the dashboard's quick lookup table.
type Course struct {
	Name             string
	Frequency        string
	TeacherFirstName string
	TeacherLastName  string
	TeacherEmail     string
	// Room may be empty, some schools omit it from the dashboard.
	Room   string
	Grades []GradeGroup
}

// GradeGroup returns the course's grade group for a grading period.
func (c Course) GradeGroup(period GradingPeriod) (GradeGroup, bool) {
	for _, g := range c.Grades {
		if g.Period == period {
			return g, true
		}
	}
	return GradeGroup{}, false
}

// GradeGroupUnused reports whether the period is absent or unused for
// this course.
func (c Course) GradeGroupUnused(period GradingPeriod) bool {
	g, ok := c.GradeGroup(period)
	return !ok || g.Kind == GradeUnused
}

// Identifier returns a stable identifier derived from the fields that
// survive re-scrapes, so callers can correlate courses across sessions.
func (c Course) Identifier() string {
	sum := sha1.Sum([]byte(fmt.Sprintf(
		"%s\x00%s\x00%s\x00%s",
		c.Frequency, c.Name, c.Room, c.TeacherEmail,
	)))
	return hex.EncodeToString(sum[:8])
}

// AssignmentFlags holds the six status flags a score may carry. Each is
// tri-state: nil means the server omitted the flag.
type AssignmentFlags struct {
	Collected  *bool
	Late       *bool
	Missing    *bool
	Exempt     *bool
	Absent     *bool
	Incomplete *bool
}

// Assignment is one graded (or pending) item from the assignment lookup
// endpoint. Score fields are nil until the assignment has been graded;
// MissingDetails is set when the score array was empty, in which case
// every score field and flag is absent together.
type Assignment struct {
	Name string
	ID   int64

	TotalPoints  *float64
	ScoredPoints *float64
	ScorePercent *float64
	LetterGrade  *string
	Category     *string

	DueDate        *time.Time
	ScoreEntryDate *time.Time

	Flags          AssignmentFlags
	MissingDetails bool
}
