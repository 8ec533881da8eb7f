package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [step...]",
	Short: "Runs the full pipeline, or just the named steps (polls, news, facebook, finance, endorsements, merge, hub).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		steps, err := selectSteps(pipelineSteps(cfg), args)
		if err != nil {
			return err
		}
		return runSteps(cmd.Context(), cfg, steps)
	},
}
