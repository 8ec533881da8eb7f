package commands

import (
	"path/filepath"

	"tnfirefly-backend/lib/configutil"
	"tnfirefly-backend/services/endorsements"
	"tnfirefly-backend/services/finance"
	"tnfirefly-backend/services/news"
	"tnfirefly-backend/services/polls"
)

// Config is the whole pipeline's configuration. firefly.json5 (plus
// a firefly.local.json5 override) replaces any section; everything
// else falls back to the built-in Tennessee defaults.
type Config struct {
	// where the output json files land
	DataDir string `json:"data_dir"`
	// sqlite run-history database
	RunLogPath string `json:"runlog_path"`
	// cron expression for the serve daemon
	Schedule string `json:"schedule"`

	Polls        polls.Config        `json:"polls"`
	News         news.Config         `json:"news"`
	Finance      finance.Config      `json:"finance"`
	Endorsements endorsements.Config `json:"endorsements"`
}

func defaultConfig() Config {
	return Config{
		DataDir:      "data",
		RunLogPath:   filepath.Join("data", "runlog.db"),
		Schedule:     "0 6 * * *",
		Polls:        polls.DefaultConfig(),
		News:         news.DefaultConfig(),
		Finance:      finance.DefaultConfig(),
		Endorsements: endorsements.DefaultConfig(),
	}
}

func readConfig() (Config, error) {
	return configutil.ReadOrDefault("firefly.json5", defaultConfig)
}

// scraped files are merge inputs; the bare DataDir files are the
// published outputs the site reads
func (c Config) scrapedPollsPath() string { return filepath.Join(c.DataDir, "scraped", "polls.json") }
func (c Config) scrapedNewsPath() string  { return filepath.Join(c.DataDir, "scraped", "news.json") }

func (c Config) pollsPath() string        { return filepath.Join(c.DataDir, "polls.json") }
func (c Config) manualPath() string       { return filepath.Join(c.DataDir, "manual-overrides.json") }
func (c Config) newsPath() string         { return filepath.Join(c.DataDir, "news.json") }
func (c Config) financePath() string      { return filepath.Join(c.DataDir, "finance.json") }
func (c Config) endorsementsPath() string { return filepath.Join(c.DataDir, "endorsements.json") }
func (c Config) hubPath() string          { return filepath.Join(c.DataDir, "hub-summary.json") }
