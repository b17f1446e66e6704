package gpa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"powergrades/lib/scrapers/powerschool"
)

func TestAggregate(t *testing.T) {
	courses := []powerschool.Course{
		yearCourse("English 10", "A-F", "A"),
		yearCourse("AP Biology", "A-F", "A"),
		yearCourse("Study Hall", "A-F", "A"),
	}
	ceramics := yearCourse("Ceramics", "A,C,E", "B+")
	ceramics.Grades = []powerschool.GradeGroup{
		{Period: powerschool.Q1, Kind: powerschool.GradePopulated, LetterGrade: "B+"},
		{Period: powerschool.E1, Kind: powerschool.GradeUnused},
		{Period: powerschool.F1, Kind: powerschool.GradePopulated, LetterGrade: "B+"},
		{Period: powerschool.Q3, Kind: powerschool.GradeUnused},
	}
	courses = append(courses, ceramics)

	report, err := Aggregate("student1", courses, LetterDayMapper{})
	require.NoError(t, err)

	require.Equal(t, "student1", report.User)
	require.Len(t, report.Courses, 4)
	require.InDelta(t, 2.25, report.CreditHours, 1e-9)
	// (4*1 + 4*1 + 0*0 + 3.3*0.25) / 2.25
	require.InDelta(t, 3.9222, report.GPA, 1e-3)
}

func TestAggregateWeighted(t *testing.T) {
	courses := []powerschool.Course{
		yearCourse("English 10", "A-F", "A"),
		yearCourse("AP Biology", "A-F", "A"),
	}

	report, err := Aggregate("student1", courses, LetterDayMapper{Weighted: true})
	require.NoError(t, err)
	require.InDelta(t, 4.5, report.GPA, 1e-9)
}

// staticMapper assigns fixed hours and values by course name, exercising
// the pluggable policy seam directly.
type staticMapper map[string]DetailedCourse

func (m staticMapper) MapFrom(course powerschool.Course) DetailedCourse {
	detailed := m[course.Name]
	detailed.Course = course
	return detailed
}

func TestAggregateCustomMapper(t *testing.T) {
	mapper := staticMapper{
		"English 10": {CreditHours: 1, GradeValue: 4.0},
		"Ceramics":   {CreditHours: 0.5, GradeValue: 3.0},
	}

	report, err := Aggregate("student1", []powerschool.Course{
		{Name: "English 10"},
		{Name: "Ceramics"},
	}, mapper)
	require.NoError(t, err)

	require.InDelta(t, 1.5, report.CreditHours, 1e-9)
	require.InDelta(t, 5.5, report.QualityPoints, 1e-9)
	require.InDelta(t, 3.667, report.GPA, 1e-3)
}

func TestAggregateZeroCreditHours(t *testing.T) {
	courses := []powerschool.Course{
		yearCourse("Study Hall", "A-F", "A"),
	}

	_, err := Aggregate("student1", courses, LetterDayMapper{})
	require.ErrorIs(t, err, ErrZeroCreditHours)
}

func TestAggregateNoCourses(t *testing.T) {
	_, err := Aggregate("student1", nil, LetterDayMapper{})
	require.ErrorIs(t, err, ErrZeroCreditHours)
}
