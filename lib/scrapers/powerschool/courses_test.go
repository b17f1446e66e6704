package powerschool

import (
	"context"
	"strings"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/dashboard.html
var dashboardFixture string

func dashboardDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dashboardFixture))
	require.NoError(t, err)
	return doc
}

func TestParseDashboard(t *testing.T) {
	courses, err := parseDashboard(context.Background(), dashboardDoc(t))
	require.NoError(t, err)

	// the broken row and the totals row do not produce courses
	require.Len(t, courses, 3)

	diff := cmp.Diff(Course{
		Name:             "Algebra II",
		Frequency:        "A-F",
		TeacherFirstName: "Jane",
		TeacherLastName:  "Doe",
		TeacherEmail:     "jdoe@school.example",
		Room:             "204",
		Grades: []GradeGroup{
			{
				Period:      Q1,
				Kind:        GradePopulated,
				LetterGrade: "A-",
				NumberGrade: 91.5,
				ScoresHref:  "guardian/scores.html?frn=004502&begdate=08/12/2025&enddate=10/10/2025&fg=Q1&schoolid=2",
			},
			{
				Period:     Q2,
				Kind:       GradePlaceholder,
				ScoresHref: "guardian/scores.html?frn=004502&begdate=10/13/2025&enddate=12/19/2025&fg=Q2&schoolid=2",
			},
			{Period: E1, Kind: GradeUnused},
			{
				Period:      F1,
				Kind:        GradePopulated,
				LetterGrade: "A-",
				NumberGrade: 91.5,
				ScoresHref:  "guardian/scores.html?frn=004502&begdate=08/12/2025&enddate=06/05/2026&fg=F1&schoolid=2",
			},
			{Period: Q3, Kind: GradeUnused},
			{Period: Q4, Kind: GradeUnused},
			{Period: E2, Kind: GradeUnused},
		},
	}, courses[0])
	if diff != "" {
		t.Fatal(diff)
	}

	bio := courses[1]
	require.Equal(t, "AP Biology", bio.Name)
	require.Equal(t, "", bio.Room)
	require.Equal(t, "jsmith@school.example", bio.TeacherEmail)

	f1, ok := bio.GradeGroup(F1)
	require.True(t, ok)
	require.Equal(t, GradePopulated, f1.Kind)
	require.Equal(t, "A", f1.LetterGrade)
	require.Equal(t, 96.2, f1.NumberGrade)

	ceramics := courses[2]
	require.Equal(t, "A,C,E", ceramics.Frequency)
	require.True(t, ceramics.GradeGroupUnused(E1))
	require.True(t, ceramics.GradeGroupUnused(Q3))
	require.False(t, ceramics.GradeGroupUnused(Q1))
}

func TestParseDashboardNoLookupTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	_, err = parseDashboard(context.Background(), doc)
	require.Error(t, err)
}

func TestParseStudentName(t *testing.T) {
	require.Equal(t, "Jane Doe", parseStudentName(dashboardDoc(t)))
}

func TestCourseIdentifierStable(t *testing.T) {
	courses, err := parseDashboard(context.Background(), dashboardDoc(t))
	require.NoError(t, err)

	again, err := parseDashboard(context.Background(), dashboardDoc(t))
	require.NoError(t, err)

	require.Equal(t, courses[0].Identifier(), again[0].Identifier())
	require.NotEqual(t, courses[0].Identifier(), courses[1].Identifier())
	require.Len(t, courses[0].Identifier(), 16)
}
