package main

import (
	"context"

	"powergrades/cmd/powergrades/commands"
	"powergrades/lib/telemetry"
)

func main() {
	ctx := context.Background()

	err := telemetry.SetupFromEnv(ctx, "powergrades")
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
		defer telemetry.Shutdown(ctx)
	}
	telemetry.InitSlog(false)

	commands.ExecuteContext(ctx)
}
