package powerschool

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"powergrades/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var scoresHrefRegex = regexp.MustCompile(
	`(?i)guardian/scores\.html\?frn=(\d+)&begdate=(\d{2})/(\d{2})/(\d{4})&enddate=(\d{2})/(\d{2})/(\d{4})&fg=([^&]+)&schoolid=(\d+)`,
)

// ScoresLink is the set of parameters embedded in a populated grade
// cell's scores href. The dates are reformatted to YYYY-MM-DD since that
// is what the assignment lookup endpoint accepts.
type ScoresLink struct {
	Frn       string
	StartDate string
	EndDate   string
	Fg        string
	SchoolID  string
}

func parseScoresHref(href string) (ScoresLink, error) {
	matches := scoresHrefRegex.FindStringSubmatch(href)
	if matches == nil {
		return ScoresLink{}, fmt.Errorf("scores href does not match expected format: %q", href)
	}
	return ScoresLink{
		Frn:       matches[1],
		StartDate: fmt.Sprintf("%s-%s-%s", matches[4], matches[2], matches[3]),
		EndDate:   fmt.Sprintf("%s-%s-%s", matches[7], matches[5], matches[6]),
		Fg:        matches[8],
		SchoolID:  matches[9],
	}, nil
}

// sectionIDFromDetail digs the data-sectionid attribute out of the
// course detail page. The attribute lives at a fixed position under
// #content-main, so any structural drift surfaces as an error here.
func sectionIDFromDetail(doc *goquery.Document) (string, error) {
	main := doc.Find("#content-main")
	if main.Length() == 0 {
		return "", fmt.Errorf("detail page has no #content-main element")
	}
	node := htmlutil.ChildElement(main.Nodes[0], 2)
	if node != nil {
		node = htmlutil.ChildElement(node, 6)
	}
	if node != nil {
		node = htmlutil.ChildElement(node, 0)
	}
	if node == nil {
		return "", fmt.Errorf("detail page is missing the section table")
	}
	sectionID := htmlutil.Attr(node, "data-sectionid")
	if sectionID == "" {
		return "", fmt.Errorf("detail page section table has no data-sectionid")
	}
	return sectionID, nil
}

// AssignmentLookupRequest is the JSON body of the assignment lookup
// endpoint.
type AssignmentLookupRequest struct {
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	SectionIDs []string `json:"section_ids"`
}

func BuildAssignmentRequest(link ScoresLink, sectionID string) AssignmentLookupRequest {
	return AssignmentLookupRequest{
		StartDate:  link.StartDate,
		EndDate:    link.EndDate,
		SectionIDs: []string{sectionID},
	}
}

// Assignments fetches the assignment list for one course in one grading
// period. Unused grading periods resolve to no assignments without any
// network traffic.
func (c *Client) Assignments(ctx context.Context, session *Session, course Course, period GradingPeriod) ([]Assignment, error) {
	ctx, span := tracer.Start(ctx, "client:Assignments")
	defer span.End()

	group, ok := course.GradeGroup(period)
	if !ok || group.Kind == GradeUnused {
		return nil, nil
	}

	detail, err := c.getDocument(ctx, session, group.ScoresHref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch course detail page")
		return nil, err
	}
	sectionID, err := sectionIDFromDetail(detail)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate section id")
		return nil, err
	}
	link, err := parseScoresHref(group.ScoresHref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse scores href")
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.Cookies).
		SetHeader("content-type", "application/json").
		SetBody(BuildAssignmentRequest(link, sectionID)).
		Post("ws/xte/assignment/lookup")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request assignments")
		return nil, err
	}

	assignments, err := ParseAssignments(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse assignments")
		return nil, err
	}
	return assignments, nil
}

type assignmentScore struct {
	ScorePoints      *float64 `json:"scorepoints"`
	ScorePercent     *float64 `json:"scorepercent"`
	ScoreLetterGrade *string  `json:"scorelettergrade"`
	ScoreEntryDate   *string  `json:"scoreentrydate"`
	IsCollected      *bool    `json:"iscollected"`
	IsLate           *bool    `json:"islate"`
	IsMissing        *bool    `json:"ismissing"`
	IsExempt         *bool    `json:"isexempt"`
	IsAbsent         *bool    `json:"isabsent"`
	IsIncomplete     *bool    `json:"isincomplete"`
}

type teacherCategory struct {
	Name *string `json:"name"`
}

type categoryAssociation struct {
	TeacherCategory teacherCategory `json:"_teachercategory"`
}

type assignmentSection struct {
	Name                 *string               `json:"name"`
	DueDate              *string               `json:"duedate"`
	TotalPointValue      *float64              `json:"totalpointvalue"`
	Scores               []assignmentScore     `json:"_assignmentscores"`
	CategoryAssociations []categoryAssociation `json:"_assignmentcategoryassociations"`
}

type assignmentRecord struct {
	ID       int64               `json:"assignmentid"`
	Sections []assignmentSection `json:"_assignmentsections"`
}

func parseAssignmentDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, fmt.Errorf("bad assignment date %q: %w", *value, err)
	}
	return &t, nil
}

// ParseAssignments decodes the assignment lookup response. A record with
// no sections means the page itself is broken and fails the whole parse,
// while a section with no scores is normal for ungraded work and only
// marks the assignment as missing details.
func ParseAssignments(body []byte) ([]Assignment, error) {
	var records []assignmentRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode assignment response: %w", err)
	}

	assignments := make([]Assignment, 0, len(records))
	for _, record := range records {
		if len(record.Sections) == 0 {
			return nil, fmt.Errorf("assignment %d has no sections", record.ID)
		}
		section := record.Sections[0]

		assignment := Assignment{
			ID:          record.ID,
			TotalPoints: section.TotalPointValue,
		}
		if section.Name != nil {
			assignment.Name = *section.Name
		}
		due, err := parseAssignmentDate(section.DueDate)
		if err != nil {
			return nil, err
		}
		assignment.DueDate = due

		if len(section.CategoryAssociations) > 0 {
			assignment.Category = section.CategoryAssociations[0].TeacherCategory.Name
		}

		if len(section.Scores) == 0 {
			assignment.MissingDetails = true
			assignments = append(assignments, assignment)
			continue
		}
		score := section.Scores[0]
		assignment.ScoredPoints = score.ScorePoints
		assignment.ScorePercent = score.ScorePercent
		assignment.LetterGrade = score.ScoreLetterGrade
		entry, err := parseAssignmentDate(score.ScoreEntryDate)
		if err != nil {
			return nil, err
		}
		assignment.ScoreEntryDate = entry
		assignment.Flags = AssignmentFlags{
			Collected:  score.IsCollected,
			Late:       score.IsLate,
			Missing:    score.IsMissing,
			Exempt:     score.IsExempt,
			Absent:     score.IsAbsent,
			Incomplete: score.IsIncomplete,
		}

		assignments = append(assignments, assignment)
	}
	return assignments, nil
}
