package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tnfirefly-backend/lib/timezone"
	"tnfirefly-backend/services/endorsements"
	"tnfirefly-backend/services/finance"
	"tnfirefly-backend/services/hub"
	"tnfirefly-backend/services/news"
	"tnfirefly-backend/services/polls"
	"tnfirefly-backend/services/runlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// step is one unit of the pipeline. Steps run in a fixed order and
// fail independently, the runner reports at the end.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// pipelineSteps builds the full sequence: scrape everything, apply
// the editorial layer, then rebuild the hub digest off the merged
// files.
func pipelineSteps(cfg Config) []step {
	pollsService := polls.NewService(cfg.Polls,
		polls.NewStore(cfg.scrapedPollsPath()), polls.NewStore(cfg.pollsPath()), cfg.manualPath())
	newsService := news.NewService(cfg.News,
		news.NewStore(cfg.scrapedNewsPath()), news.NewStore(cfg.newsPath()), cfg.manualPath())
	financeService := finance.NewService(cfg.Finance, finance.NewStore(cfg.financePath()))
	endorsementsService := endorsements.NewService(cfg.Endorsements, endorsements.NewStore(cfg.endorsementsPath()))
	hubService := newHubService(cfg)

	return []step{
		{"polls", func(ctx context.Context) error {
			_, err := pollsService.Scrape(ctx)
			return err
		}},
		{"news", func(ctx context.Context) error {
			_, err := newsService.Collect(ctx)
			return err
		}},
		{"facebook", func(ctx context.Context) error {
			_, err := newsService.CollectFacebook(ctx)
			return err
		}},
		{"finance", func(ctx context.Context) error {
			_, err := financeService.Scrape(ctx)
			return err
		}},
		{"endorsements", func(ctx context.Context) error {
			_, err := endorsementsService.Scrape(ctx)
			return err
		}},
		{"merge", func(ctx context.Context) error {
			if _, err := pollsService.Merge(ctx); err != nil {
				return err
			}
			_, err := newsService.Merge(ctx)
			return err
		}},
		{"hub", func(ctx context.Context) error {
			_, err := hubService.Build(ctx)
			return err
		}},
	}
}

func newHubService(cfg Config) hub.Service {
	return hub.NewService(
		polls.NewStore(cfg.pollsPath()),
		news.NewStore(cfg.newsPath()),
		finance.NewStore(cfg.financePath()),
		endorsements.NewStore(cfg.endorsementsPath()),
		hub.NewStore(cfg.hubPath()),
	)
}

type stepResult struct {
	name     string
	duration time.Duration
	err      error
}

// runSteps executes the steps in order, records each into the run
// log, prints the summary table, and reports failure when any step
// failed.
func runSteps(ctx context.Context, cfg Config, steps []step) error {
	log, err := runlog.Open(cfg.RunLogPath)
	if err != nil {
		slog.Warn("run history unavailable", "err", err)
	} else {
		defer log.Close()
	}

	var results []stepResult
	for _, s := range steps {
		started := timezone.Now()
		slog.Info("running step", "step", s.name)
		stepErr := s.run(ctx)
		result := stepResult{name: s.name, duration: time.Since(started), err: stepErr}
		results = append(results, result)

		if err == nil {
			detail := ""
			if stepErr != nil {
				detail = stepErr.Error()
			}
			if recErr := log.Record(ctx, runlog.Run{
				Step:      s.name,
				StartedAt: started,
				Duration:  result.duration,
				Success:   stepErr == nil,
				Detail:    detail,
			}); recErr != nil {
				slog.Warn("failed to record run", "step", s.name, "err", recErr)
			}
		}
	}

	renderResults(results)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(results))
	}
	return nil
}

func renderResults(results []stepResult) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.AppendHeader(table.Row{"Step", "Status", "Duration", "Detail"})
	for _, r := range results {
		status := text.FgGreen.Sprint("ok")
		detail := ""
		if r.err != nil {
			status = text.FgRed.Sprint("FAILED")
			detail = r.err.Error()
		}
		w.AppendRow(table.Row{r.name, status, r.duration.Round(time.Millisecond), detail})
	}
	w.SetStyle(table.StyleLight)
	w.Render()
}

// selectSteps filters by name, keeping pipeline order. Unknown names
// are an error rather than a silent no-op.
func selectSteps(steps []step, names []string) ([]step, error) {
	if len(names) == 0 {
		return steps, nil
	}
	byName := map[string]step{}
	for _, s := range steps {
		byName[s.name] = s
	}
	var selected []step
	for _, s := range steps {
		for _, name := range names {
			if s.name == name {
				selected = append(selected, s)
				break
			}
		}
	}
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown step %q", name)
		}
	}
	return selected, nil
}
