package commands

import (
	"fmt"
	"os"

	"powergrades/lib/gpa"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var gpaWeighted *bool

func init() {
	gpaWeighted = gpaCmd.Flags().Bool("weighted", false, "Apply honors and AP grade bumps.")
	rootCmd.AddCommand(gpaCmd)
}

var gpaCmd = &cobra.Command{
	Use:   "gpa [--weighted]",
	Short: "Computes the year GPA from final grades.",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, session := login(cmd.Context())

		report, err := gpa.Aggregate(
			session.Username,
			session.Courses,
			gpa.LetterDayMapper{Weighted: *gpaWeighted},
		)
		if err != nil {
			fatal("failed to compute gpa", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Course", "Credit Hours", "Grade Value"})

		for _, course := range report.Courses {
			t.AppendRow(table.Row{
				course.Name,
				fmt.Sprintf("%g", course.CreditHours),
				fmt.Sprintf("%g", course.GradeValue),
			})
		}
		t.AppendFooter(table.Row{"GPA", "", fmt.Sprintf("%.3f", report.GPA)})

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
