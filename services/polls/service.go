package polls

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tnfirefly-backend/lib/mergeutil"
	"tnfirefly-backend/lib/restyutil"
	"tnfirefly-backend/lib/timezone"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/polls")

// Service runs the polling pipeline: scrape every configured source,
// normalize into records, merge into the scraped file, then layer
// the editorial overrides on top into the published file. Keeping
// the two files apart means a merge always rebuilds from scraped
// data plus the current overrides, so a withdrawn override vanishes
// on the next merge.
type Service struct {
	config     Config
	scraped    Store
	published  Store
	manualPath string

	tennsight TennSight
	towin     ToWin
	realclear RealClear
}

func NewService(config Config, scraped, published Store, manualPath string) Service {
	client := restyutil.NewClient("services/polls", restyutil.Options{
		Delay:            time.Second * 2,
		BypassCloudflare: true,
	})
	return Service{
		config:     config,
		scraped:    scraped,
		published:  published,
		manualPath: manualPath,
		tennsight:  NewTennSight(client, config),
		towin:      NewToWin(client, config),
		realclear:  NewRealClear(client, config),
	}
}

// Scrape visits every source in sequence and merges whatever each
// one produced. A source failing is logged and skipped; the run only
// fails when no source produced anything usable, since writing an
// emptied file over good data would be worse than writing nothing.
func (s Service) Scrape(ctx context.Context) (*File, error) {
	ctx, span := tracer.Start(ctx, "polls:Scrape")
	defer span.End()

	file := s.scraped.Load()
	usable := 0

	usable += s.scrapeTennSight(ctx, file)
	usable += s.scrapeToWin(ctx, file)

	file.Aggregators = s.realclear.Scrape(ctx)
	for _, dump := range file.Aggregators {
		if dump.HasData {
			usable++
		}
	}

	if usable == 0 {
		return nil, fmt.Errorf("no source produced usable polling content")
	}

	file.PollingSources = mergeutil.AppendByName(file.PollingSources, s.config.Sources,
		func(src Source) string { return src.Name })
	file.Trendline = BuildTrendline(file.Polls, s.config.LeadCandidate())
	file.Analysis = BuildAnalysis(file, s.config)

	now := timezone.Now()
	file.LastScraped = now.Format(time.RFC3339)
	file.LastUpdated = now.Format("2006-01-02")

	if err := s.scraped.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "scrape complete",
		"polls", len(file.Polls),
		"generalPolls", len(file.GeneralPolls),
		"raceRatings", len(file.RaceRatings))
	return file, nil
}

func (s Service) scrapeTennSight(ctx context.Context, file *File) int {
	ctx, span := tracer.Start(ctx, "polls:scrapeTennSight")
	defer span.End()

	pages, softFailures := s.tennsight.Scrape(ctx)
	if softFailures > 0 {
		slog.WarnContext(ctx, "tennsight pages skipped", "count", softFailures)
	}

	usable := 0
	for _, facts := range pages {
		usable++
		if facts.Poll != nil {
			file.Polls = mergeutil.UpdateByID(file.Polls, []PollRecord{*facts.Poll})
		}

		approvals := map[string][]ApprovalRecord{}
		for _, a := range facts.Approvals {
			approvals[a.Subject] = append(approvals[a.Subject], a)
		}
		file.ApprovalRatings = mergeutil.MergeGrouped(file.ApprovalRatings, approvals,
			ApprovalRecord.SecondaryKey)

		issues := map[string][]IssueRecord{}
		for _, i := range facts.Issues {
			issues[i.Topic] = append(issues[i.Topic], i)
		}
		file.IssuePolling = mergeutil.MergeGrouped(file.IssuePolling, issues,
			IssueRecord.SecondaryKey)

		environment := map[string][]EnvironmentMetric{}
		for _, e := range facts.Environment {
			environment[e.Metric] = append(environment[e.Metric], e)
		}
		file.PoliticalEnvironment = mergeutil.MergeGrouped(file.PoliticalEnvironment, environment,
			EnvironmentMetric.SecondaryKey)
	}
	return usable
}

func (s Service) scrapeToWin(ctx context.Context, file *File) int {
	ctx, span := tracer.Start(ctx, "polls:scrapeToWin")
	defer span.End()

	extract, err := s.towin.Scrape(ctx)
	if err != nil {
		slog.WarnContext(ctx, "270towin scrape failed", "err", err)
		return 0
	}

	usable := 0
	if len(extract.Polls) > 0 {
		file.Polls = mergeutil.UpdateByID(file.Polls, extract.Polls)
		usable += len(extract.Polls)
	}
	if len(extract.GeneralPolls) > 0 {
		file.GeneralPolls = mergeutil.UpdateByID(file.GeneralPolls, extract.GeneralPolls)
		usable += len(extract.GeneralPolls)
	}
	// ratings are a snapshot, the newest successful read replaces
	// the stored set wholesale
	if len(extract.RaceRatings) > 0 {
		file.RaceRatings = extract.RaceRatings
		usable += len(extract.RaceRatings)
	}
	return usable
}

// Merge rebuilds the published file from the scraped file plus the
// current override layer. Safe to run at any time, including when no
// overrides exist; the scraped file is never written here.
func (s Service) Merge(ctx context.Context) (*File, error) {
	_, span := tracer.Start(ctx, "polls:Merge")
	defer span.End()

	manual, err := ReadManual(s.manualPath)
	if err != nil {
		return nil, err
	}

	file := s.scraped.Load()
	ApplyManual(file, manual)
	if err := s.published.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "manual merge complete",
		"manualPolls", len(manual.Polls), "manualSources", len(manual.Sources))
	return file, nil
}
