package commands

import (
	"fmt"
	"os"
	"strings"

	"powergrades/lib/scrapers/powerschool"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var assignmentsPeriod *string

func init() {
	assignmentsPeriod = assignmentsCmd.Flags().String("period", "F1", "The grading period to list assignments for.")
	rootCmd.AddCommand(assignmentsCmd)
}

func parsePeriodFlag(value string) (powerschool.GradingPeriod, error) {
	for _, period := range []powerschool.GradingPeriod{
		powerschool.Q1, powerschool.Q2, powerschool.E1, powerschool.F1,
		powerschool.Q3, powerschool.Q4, powerschool.E2,
	} {
		if strings.EqualFold(period.String(), value) {
			return period, nil
		}
	}
	return powerschool.PeriodUnknown, fmt.Errorf("unknown grading period %q", value)
}

func formatPoints(a powerschool.Assignment) string {
	if a.MissingDetails || a.ScoredPoints == nil || a.TotalPoints == nil {
		return "-"
	}
	return fmt.Sprintf("%g/%g", *a.ScoredPoints, *a.TotalPoints)
}

var assignmentsCmd = &cobra.Command{
	Use:   "assignments <course name> [--period <period>]",
	Short: "Prints the assignments of a course for one grading period.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		period, err := parsePeriodFlag(*assignmentsPeriod)
		if err != nil {
			fatal("bad period flag", err)
		}

		cfg, client, session := login(cmd.Context())

		course, ok := powerschool.NewFilter(session.Courses).
			NameContains(args[0]).
			First()
		if !ok {
			fatal("no such course", fmt.Errorf("no course name contains %q", args[0]))
		}

		assignments, err := client.Assignments(cmd.Context(), session, course, period)
		if err != nil {
			fatal("failed to fetch assignments", err)
		}
		assignments = cfg.Weights.SnapAssignments(course.Name, assignments)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Assignment", "Category", "Weight", "Due", "Score", "Letter"})

		for _, a := range assignments {
			category := ""
			weight := ""
			if a.Category != nil {
				category = *a.Category
				if _, w, ok := cfg.Weights.SnapCategory(course.Name, category); ok {
					weight = fmt.Sprintf("%.0f%%", w*100)
				}
			}
			due := ""
			if a.DueDate != nil {
				due = a.DueDate.Format("2006-01-02")
			}
			letter := ""
			if a.LetterGrade != nil {
				letter = *a.LetterGrade
			}
			t.AppendRow(table.Row{a.Name, category, weight, due, formatPoints(a), letter})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
