// Package gpa turns scraped courses into weighted or unweighted grade
// point averages.
package gpa

import (
	"strings"

	"powergrades/lib/scrapers/powerschool"
	"powergrades/lib/textutil"
)

// DetailedCourse is a scraped course annotated with the two numbers GPA
// math needs.
type DetailedCourse struct {
	powerschool.Course
	CreditHours float64
	GradeValue  float64
}

// CourseMapper decides how much a course counts for and what its grade
// is worth. Schools with bespoke schedules can plug in their own.
type CourseMapper interface {
	MapFrom(course powerschool.Course) DetailedCourse
}

// LetterDayMapper implements the lettered-day schedule most portals in
// our district run: full-year courses meet every day, semester courses
// meet on alternating letter days, and study halls carry no credit.
type LetterDayMapper struct {
	// Weighted enables the honors and AP grade bumps.
	Weighted bool
}

var letterValues = map[string]float64{
	"F":  0,
	"D-": 0.7,
	"D":  1,
	"D+": 1.3,
	"C-": 1.7,
	"C":  2,
	"C+": 2.3,
	"B-": 2.7,
	"B":  3,
	"B+": 3.3,
	"A-": 3.7,
	"A":  4,
	"A+": 4.3,
}

func (m LetterDayMapper) creditHours(course powerschool.Course) float64 {
	if course.GradeGroupUnused(powerschool.F1) {
		return 0
	}
	if strings.Contains(strings.ToLower(course.Name), "study hall") {
		return 0
	}

	// the letter days are embedded in a larger expression, e.g. "2(A,C,E)"
	freq := strings.ToUpper(course.Frequency)
	alternating := strings.Contains(freq, "A,C,E") || strings.Contains(freq, "B,D,F")
	if !alternating {
		return 1
	}

	e1Unused := course.GradeGroupUnused(powerschool.E1)
	e2Unused := course.GradeGroupUnused(powerschool.E2)
	if e1Unused || e2Unused {
		// a single-semester alternating-day course, unless both middle
		// quarters ran, in which case it spanned the year anyway
		q1 := !course.GradeGroupUnused(powerschool.Q1)
		q3 := !course.GradeGroupUnused(powerschool.Q3)
		if q1 && q3 {
			return 0.5
		}
		return 0.25
	}
	return 0.5
}

func (m LetterDayMapper) gradeValue(course powerschool.Course) float64 {
	group, ok := course.GradeGroup(powerschool.F1)
	if !ok || group.Kind != powerschool.GradePopulated {
		return 0
	}

	value, ok := letterValues[strings.ToUpper(group.LetterGrade)]
	if !ok {
		return 0
	}

	if m.Weighted {
		name := strings.ToLower(course.Name)
		switch {
		case strings.Contains(name, "honors"):
			value += 0.5
		case textutil.ContainsToken(name, "ap"), textutil.ContainsToken(name, "a.p."):
			value += 1
		}
	}
	return value
}

func (m LetterDayMapper) MapFrom(course powerschool.Course) DetailedCourse {
	return DetailedCourse{
		Course:      course,
		CreditHours: m.creditHours(course),
		GradeValue:  m.gradeValue(course),
	}
}
