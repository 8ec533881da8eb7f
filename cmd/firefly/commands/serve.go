package commands

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var serveNow *bool

func init() {
	serveNow = serveCmd.Flags().Bool("now", false, "Run the pipeline once immediately before waiting on the schedule.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the pipeline on the configured cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runOnce := func() {
			if err := runSteps(ctx, cfg, pipelineSteps(cfg)); err != nil {
				slog.Error("scheduled pipeline run failed", "err", err)
			}
		}

		if *serveNow {
			runOnce()
		}

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Schedule, runOnce); err != nil {
			return err
		}
		scheduler.Start()
		slog.Info("scheduler started", "schedule", cfg.Schedule)

		<-ctx.Done()
		slog.Info("shutting down")
		<-scheduler.Stop().Done()
		return nil
	},
}
