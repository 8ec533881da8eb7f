package commands

import (
	"os"
	"time"

	"tnfirefly-backend/services/runlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var statusLimit *int

func init() {
	statusLimit = statusCmd.Flags().IntP("limit", "n", 20, "How many runs to show.")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the recent pipeline run history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		log, err := runlog.Open(cfg.RunLogPath)
		if err != nil {
			return err
		}
		defer log.Close()

		runs, err := log.Recent(cmd.Context(), *statusLimit)
		if err != nil {
			return err
		}

		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.AppendHeader(table.Row{"Started", "Step", "Status", "Duration", "Detail"})
		for _, run := range runs {
			status := text.FgGreen.Sprint("ok")
			if !run.Success {
				status = text.FgRed.Sprint("FAILED")
			}
			w.AppendRow(table.Row{
				run.StartedAt.Format("2006-01-02 15:04"),
				run.Step,
				status,
				run.Duration.Round(time.Millisecond),
				run.Detail,
			})
		}
		w.SetStyle(table.StyleLight)
		w.Render()
		return nil
	},
}
