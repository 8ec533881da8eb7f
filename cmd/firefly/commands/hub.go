package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(hubCmd)
}

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Rebuilds hub-summary.json from the current per-service files without scraping anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		_, err = newHubService(cfg).Build(cmd.Context())
		return err
	},
}
