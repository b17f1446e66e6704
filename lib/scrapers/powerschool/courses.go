package powerschool

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"powergrades/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var teacherNameRegex = regexp.MustCompile(`(?im)^Details about (.*?), (.*?)$`)

// the sentinel the portal renders for a grading period that exists but
// has not been graded yet
const pendingGradeSentinel = "[ i ]"

// parseDashboard decodes the "Grades and Attendance" quick lookup table
// into courses. A malformed course row is skipped and reported, it does
// not abort the remaining rows.
func parseDashboard(ctx context.Context, doc *goquery.Document) ([]Course, error) {
	lookup := doc.Find("#quickLookup tbody").First()
	if lookup.Length() == 0 {
		return nil, fmt.Errorf("dashboard has no quick lookup table")
	}

	rows := lookup.ChildrenFiltered("tr")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("quick lookup table has no header row")
	}

	// row 0 is the grouped banner row, row 1 carries the column labels
	layout := NewColumnLayout(rows.Eq(1))

	var courses []Course
	rows.Each(func(i int, row *goquery.Selection) {
		// course rows are the only ones carrying an id attribute
		if _, ok := row.Attr("id"); !ok {
			return
		}
		course, err := courseFromRow(row.Nodes[0], layout)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed course row", "row", i, "err", err)
			return
		}
		courses = append(courses, course)
	})

	return courses, nil
}

// courseFromRow decodes one course `<tr>` by zipping its cells with the
// page's column layout.
func courseFromRow(row *html.Node, layout ColumnLayout) (Course, error) {
	cells := htmlutil.ChildElements(row)
	if len(cells) == 0 {
		return Course{}, fmt.Errorf("row has no cells")
	}

	byRole := map[ColumnRole]*html.Node{}
	for i, cell := range cells {
		byRole[layout.At(i)] = cell
	}

	identity := byRole[RoleCourse]
	if identity == nil {
		return Course{}, fmt.Errorf("row has no course identity cell")
	}

	course := Course{
		Frequency: htmlutil.StripPadding(htmlutil.GetText(cells[0])),
	}
	if err := parseIdentityCell(identity, &course); err != nil {
		return Course{}, err
	}

	for i, cell := range cells {
		period, ok := layout.At(i).GradingPeriod()
		if !ok {
			continue
		}
		// at most one grade group per period
		if _, exists := course.GradeGroup(period); exists {
			continue
		}
		group, err := parseGradeCell(cell, period)
		if err != nil {
			return Course{}, fmt.Errorf("grade cell %s: %w", period, err)
		}
		course.Grades = append(course.Grades, group)
	}

	return course, nil
}

// parseIdentityCell pulls the course name, teacher and room out of the
// "Course" column. The cell's children are, in order: name text, <br>, a
// teacher detail anchor carrying a "Details about <last>, <first>" title,
// a padding text node, a mailto anchor, and an optional room text node.
func parseIdentityCell(cell *html.Node, course *Course) error {
	course.Name = htmlutil.StripPadding(htmlutil.NodeText(htmlutil.ChildNode(cell, 0)))
	if course.Name == "" {
		return fmt.Errorf("course name missing")
	}

	teacherDesc := htmlutil.Attr(htmlutil.ChildNode(cell, 2), "title")
	groups := teacherNameRegex.FindStringSubmatch(teacherDesc)
	if len(groups) < 3 {
		return fmt.Errorf("unexpected teacher descriptor %q", teacherDesc)
	}
	course.TeacherLastName = groups[1]
	course.TeacherFirstName = groups[2]

	href := htmlutil.Attr(htmlutil.ChildNode(cell, 4), "href")
	if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
		return fmt.Errorf("teacher email link missing")
	}
	course.TeacherEmail = href[len("mailto:"):]

	// best effort: the room is absent from some schools' dashboards
	room := strings.ReplaceAll(htmlutil.NodeText(htmlutil.ChildNode(cell, 5)), " ", "")
	if len(room) > 5 {
		// drop the "- Rm: " style prefix
		course.Room = strings.TrimSpace(room[5:])
	}

	return nil
}

// parseGradeCell classifies one grading period cell. No nested link at
// all means the period is unused for this course; a link whose text is
// the "[ i ]" sentinel is a graded period pending its grade; anything
// else is a populated grade rendered as [letter, <br>, number].
func parseGradeCell(cell *html.Node, period GradingPeriod) (GradeGroup, error) {
	link := htmlutil.ChildElement(cell, 0)
	if link == nil {
		return GradeGroup{Period: period, Kind: GradeUnused}, nil
	}

	href := htmlutil.Attr(link, "href")
	first := htmlutil.NodeText(htmlutil.ChildNode(link, 0))
	if first == pendingGradeSentinel {
		return GradeGroup{
			Period:     period,
			Kind:       GradePlaceholder,
			ScoresHref: "guardian/" + href,
		}, nil
	}

	numberText := htmlutil.NodeText(htmlutil.ChildNode(link, 2))
	number, err := strconv.ParseFloat(strings.TrimSpace(numberText), 64)
	if err != nil {
		return GradeGroup{}, fmt.Errorf("parse number grade %q: %w", numberText, err)
	}

	return GradeGroup{
		Period:      period,
		Kind:        GradePopulated,
		LetterGrade: strings.TrimSpace(first),
		NumberGrade: number,
		ScoresHref:  "guardian/" + href,
	}, nil
}

// parseStudentName pulls the logged-in student's display name out of the
// dashboard header.
func parseStudentName(doc *goquery.Document) string {
	sel := doc.Find("#userName")
	if sel.Length() == 0 {
		return ""
	}
	first := htmlutil.ChildElement(sel.Nodes[0], 0)
	return htmlutil.StripPadding(htmlutil.NodeText(htmlutil.ChildNode(first, 0)))
}
