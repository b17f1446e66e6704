package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"powergrades/lib/configutil"
	"powergrades/lib/gpa"
	"powergrades/lib/scrapers/powerschool"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "powergrades",
	Short: "powergrades scrapes grades, assignments and GPA from a PowerSchool portal.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

type Config struct {
	InstallURL string `json:"install_url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	// optional per-course category weight tables
	Weights gpa.WeightData `json:"weights"`
}

func login(ctx context.Context) (Config, *powerschool.Client, *powerschool.Session) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		fatal("failed to read config", err)
	}

	client, err := powerschool.NewClient(cfg.InstallURL)
	if err != nil {
		fatal("failed to initialize client", err)
	}

	slog.Info("logging in", "username", cfg.Username)
	session, err := client.Login(ctx, powerschool.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		fatal("failed to login", err)
	}
	return cfg, client, session
}
