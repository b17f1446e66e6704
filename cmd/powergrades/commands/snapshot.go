package commands

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"powergrades/lib/configutil"
	"powergrades/lib/gradestore"
	"powergrades/lib/scrapers/powerschool"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore() gradestore.Store {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		fatal("failed to read config", err)
	}
	path := cfg.Database
	if path == "" {
		path = "grades.db"
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		fatal("failed to open database", err)
	}
	store, err := gradestore.NewStore(database)
	if err != nil {
		fatal("failed to initialize store", err)
	}
	return store
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Records today's numeric grades into the snapshot database.",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, session := login(cmd.Context())
		store := openStore()

		now := time.Now()
		var snapshots []gradestore.CourseSnapshot
		for _, course := range session.Courses {
			group, ok := course.GradeGroup(powerschool.F1)
			if !ok || group.Kind != powerschool.GradePopulated {
				continue
			}
			snapshots = append(snapshots, gradestore.CourseSnapshot{
				Course: course.Name,
				Time:   now,
				Value:  group.NumberGrade,
			})
		}

		err := store.Push(cmd.Context(), session.Username, now, snapshots)
		if err != nil {
			fatal("failed to push snapshots", err)
		}
		slog.Info("recorded snapshots", "courses", len(snapshots))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "Prints the recorded grade history of a user.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		courses, err := store.Pull(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to pull snapshots", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Course", "Time", "Grade"})

		for _, course := range courses {
			for _, snapshot := range course.Snapshots {
				t.AppendRow(table.Row{
					course.Course,
					snapshot.Time.Format("2006-01-02"),
					snapshot.Value,
				})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
