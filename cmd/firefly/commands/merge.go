package commands

import (
	"github.com/spf13/cobra"

	"tnfirefly-backend/services/news"
	"tnfirefly-backend/services/polls"
)

func init() {
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Rebuilds the published polls and news files from scraped data plus the manual overrides, then the hub digest.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		pollsService := polls.NewService(cfg.Polls,
			polls.NewStore(cfg.scrapedPollsPath()), polls.NewStore(cfg.pollsPath()), cfg.manualPath())
		if _, err := pollsService.Merge(cmd.Context()); err != nil {
			return err
		}
		newsService := news.NewService(cfg.News,
			news.NewStore(cfg.scrapedNewsPath()), news.NewStore(cfg.newsPath()), cfg.manualPath())
		if _, err := newsService.Merge(cmd.Context()); err != nil {
			return err
		}
		_, err = newHubService(cfg).Build(cmd.Context())
		return err
	},
}
