package commands

import (
	"os"

	"powergrades/lib/scrapers/powerschool"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func formatGrade(course powerschool.Course, period powerschool.GradingPeriod) string {
	group, ok := course.GradeGroup(period)
	if !ok || group.Kind == powerschool.GradeUnused {
		return ""
	}
	if group.Kind == powerschool.GradePlaceholder {
		return "[ i ]"
	}
	return group.LetterGrade
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Prints the current course list with letter grades per grading period.",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, session := login(cmd.Context())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Course", "Teacher", "Room", "Q1", "Q2", "E1", "F1", "Q3", "Q4", "E2"})

		periods := []powerschool.GradingPeriod{
			powerschool.Q1, powerschool.Q2, powerschool.E1, powerschool.F1,
			powerschool.Q3, powerschool.Q4, powerschool.E2,
		}
		for _, course := range session.Courses {
			row := table.Row{
				course.Name,
				course.TeacherLastName,
				course.Room,
			}
			for _, period := range periods {
				row = append(row, formatGrade(course, period))
			}
			t.AppendRow(row)
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
