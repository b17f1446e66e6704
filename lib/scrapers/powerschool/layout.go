package powerschool

import (
	"strconv"
	"strings"

	"powergrades/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ColumnRole is the semantic meaning of one dashboard table column.
type ColumnRole int

const (
	// RoleNone marks a column whose header label was not recognized; the
	// extractor ignores it.
	RoleNone ColumnRole = iota
	RoleExp
	RoleLastWeek
	RoleThisWeek
	RoleCourse
	RoleAbsences
	RoleTardies
	RoleQ1
	RoleQ2
	RoleE1
	RoleF1
	RoleQ3
	RoleQ4
	RoleE2
)

// fixed label table, matched case-insensitively against header text
var roleLabels = map[string]ColumnRole{
	"exp":       RoleExp,
	"last week": RoleLastWeek,
	"this week": RoleThisWeek,
	"course":    RoleCourse,
	"absences":  RoleAbsences,
	"tardies":   RoleTardies,
	"q1":        RoleQ1,
	"q2":        RoleQ2,
	"e1":        RoleE1,
	"f1":        RoleF1,
	"q3":        RoleQ3,
	"q4":        RoleQ4,
	"e2":        RoleE2,
}

var roleGradingPeriods = map[ColumnRole]GradingPeriod{
	RoleQ1: Q1,
	RoleQ2: Q2,
	RoleE1: E1,
	RoleF1: F1,
	RoleQ3: Q3,
	RoleQ4: Q4,
	RoleE2: E2,
}

// GradingPeriod returns the grading period a column role stands for, if
// it stands for one at all.
func (r ColumnRole) GradingPeriod() (GradingPeriod, bool) {
	p, ok := roleGradingPeriods[r]
	return p, ok
}

func roleFromLabel(label string) ColumnRole {
	role, ok := roleLabels[strings.ToLower(htmlutil.StripPadding(label))]
	if !ok {
		return RoleNone
	}
	return role
}

// ColumnLayout maps a zero-based column index to the semantic role of
// that column. It is built once from the dashboard header row and shared
// by every course row on the page; course rows are decoded purely by
// position against it.
type ColumnLayout struct {
	roles []ColumnRole
}

// NewColumnLayout decodes a header `<tr>` into a layout. A header cell
// with a colspan attribute contributes its role that many times, so the
// resulting index space matches the flat cell layout of the course rows
// beneath it.
func NewColumnLayout(headerRow *goquery.Selection) ColumnLayout {
	var roles []ColumnRole

	headerRow.Children().Each(func(_ int, cell *goquery.Selection) {
		span := 1
		if attr, ok := cell.Attr("colspan"); ok && attr != "" {
			parsed, err := strconv.Atoi(strings.TrimSpace(attr))
			if err == nil && parsed > 0 {
				span = parsed
			}
		}

		role := roleFromLabel(cell.Text())
		for i := 0; i < span; i++ {
			roles = append(roles, role)
		}
	})

	return ColumnLayout{roles: roles}
}

// At returns the role of the column at index i, or RoleNone when the row
// is wider than the header described.
func (l ColumnLayout) At(i int) ColumnRole {
	if i < 0 || i >= len(l.roles) {
		return RoleNone
	}
	return l.roles[i]
}

func (l ColumnLayout) Len() int {
	return len(l.roles)
}
