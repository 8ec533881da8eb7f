package main

import (
	"context"
	"log/slog"

	"tnfirefly-backend/cmd/firefly/commands"
	"tnfirefly-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	if err := telemetry.SetupFromEnv(ctx, "firefly"); err != nil {
		slog.Warn("telemetry setup failed, continuing without", "err", err)
	}
	telemetry.InstrumentPerfStats(ctx)
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
