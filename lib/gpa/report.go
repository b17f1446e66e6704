package gpa

import (
	"fmt"

	"powergrades/lib/scrapers/powerschool"
)

// ErrZeroCreditHours means every course mapped to zero credit hours, so
// there is no average to take.
var ErrZeroCreditHours = fmt.Errorf("no courses with nonzero credit hours")

// Report is one student's GPA with the per-course details that produced
// it.
type Report struct {
	User          string
	Courses       []DetailedCourse
	QualityPoints float64
	CreditHours   float64
	GPA           float64
}

// Aggregate maps every course through the mapper and takes the
// credit-hour weighted average of the grade values.
func Aggregate(user string, courses []powerschool.Course, mapper CourseMapper) (Report, error) {
	report := Report{User: user}
	for _, course := range courses {
		detailed := mapper.MapFrom(course)
		report.Courses = append(report.Courses, detailed)
		report.QualityPoints += detailed.GradeValue * detailed.CreditHours
		report.CreditHours += detailed.CreditHours
	}
	if report.CreditHours == 0 {
		return Report{}, ErrZeroCreditHours
	}
	report.GPA = report.QualityPoints / report.CreditHours
	return report, nil
}
