package gpa

import (
	"testing"

	"powergrades/lib/scrapers/powerschool"

	"github.com/stretchr/testify/require"
)

func yearCourse(name, frequency, letter string) powerschool.Course {
	return powerschool.Course{
		Name:      name,
		Frequency: frequency,
		Grades: []powerschool.GradeGroup{
			{Period: powerschool.Q1, Kind: powerschool.GradePopulated, LetterGrade: letter},
			{Period: powerschool.E1, Kind: powerschool.GradePopulated, LetterGrade: letter},
			{Period: powerschool.F1, Kind: powerschool.GradePopulated, LetterGrade: letter},
			{Period: powerschool.Q3, Kind: powerschool.GradePopulated, LetterGrade: letter},
			{Period: powerschool.E2, Kind: powerschool.GradePopulated, LetterGrade: letter},
		},
	}
}

func TestLetterDayMapperGradeValue(t *testing.T) {
	testCases := []struct {
		name     string
		course   powerschool.Course
		weighted bool
		expected float64
	}{
		{
			name:     "plain A",
			course:   yearCourse("English 10", "A-F", "A"),
			expected: 4,
		},
		{
			name:     "A+ exceeds 4.0",
			course:   yearCourse("Music Theory", "A-F", "A+"),
			expected: 4.3,
		},
		{
			name:     "F is zero",
			course:   yearCourse("English 10", "A-F", "F"),
			expected: 0,
		},
		{
			name:     "honors bump",
			course:   yearCourse("Honors Chemistry", "A-F", "B+"),
			weighted: true,
			expected: 3.8,
		},
		{
			name:     "ap bump",
			course:   yearCourse("AP Biology", "A-F", "A"),
			weighted: true,
			expected: 5,
		},
		{
			name:     "ap token does not match inside words",
			course:   yearCourse("Graphics Design", "A-F", "A"),
			weighted: true,
			expected: 4,
		},
		{
			name:     "unweighted ignores ap",
			course:   yearCourse("AP Biology", "A-F", "A"),
			expected: 4,
		},
		{
			name:     "unknown letter is zero",
			course:   yearCourse("English 10", "A-F", "P"),
			expected: 0,
		},
	}

	for _, test := range testCases {
		mapper := LetterDayMapper{Weighted: test.weighted}
		detailed := mapper.MapFrom(test.course)
		require.Equal(t, test.expected, detailed.GradeValue, test.name)
	}
}

func TestLetterDayMapperCreditHours(t *testing.T) {
	fullYear := yearCourse("English 10", "A-F", "A")

	studyHall := yearCourse("Study Hall", "A-F", "A")

	noFinal := yearCourse("Yearbook", "A-F", "A")
	noFinal.Grades = []powerschool.GradeGroup{
		{Period: powerschool.F1, Kind: powerschool.GradeUnused},
	}

	alternatingYear := yearCourse("Ceramics", "A,C,E", "A")

	alternatingExpression := yearCourse("Ceramics", "2(A,C,E)", "A")

	alternatingSemester := yearCourse("Photography", "B,D,F", "A")
	alternatingSemester.Grades = []powerschool.GradeGroup{
		{Period: powerschool.Q1, Kind: powerschool.GradePopulated, LetterGrade: "A"},
		{Period: powerschool.E1, Kind: powerschool.GradeUnused},
		{Period: powerschool.F1, Kind: powerschool.GradePopulated, LetterGrade: "A"},
		{Period: powerschool.Q3, Kind: powerschool.GradeUnused},
		{Period: powerschool.E2, Kind: powerschool.GradePopulated, LetterGrade: "A"},
	}

	alternatingBothMiddleQuarters := yearCourse("Sculpture", "A,C,E", "A")
	alternatingBothMiddleQuarters.Grades = []powerschool.GradeGroup{
		{Period: powerschool.Q1, Kind: powerschool.GradePopulated, LetterGrade: "A"},
		{Period: powerschool.E1, Kind: powerschool.GradeUnused},
		{Period: powerschool.F1, Kind: powerschool.GradePopulated, LetterGrade: "A"},
		{Period: powerschool.Q3, Kind: powerschool.GradePopulated, LetterGrade: "A"},
		{Period: powerschool.E2, Kind: powerschool.GradePopulated, LetterGrade: "A"},
	}

	mapper := LetterDayMapper{}

	require.Equal(t, 1.0, mapper.MapFrom(fullYear).CreditHours)
	require.Equal(t, 0.0, mapper.MapFrom(studyHall).CreditHours)
	require.Equal(t, 0.0, mapper.MapFrom(noFinal).CreditHours)
	require.Equal(t, 0.5, mapper.MapFrom(alternatingYear).CreditHours)
	require.Equal(t, 0.5, mapper.MapFrom(alternatingExpression).CreditHours)
	require.Equal(t, 0.25, mapper.MapFrom(alternatingSemester).CreditHours)
	require.Equal(t, 0.5, mapper.MapFrom(alternatingBothMiddleQuarters).CreditHours)
}
