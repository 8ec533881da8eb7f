package finance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tnfirefly-backend/lib/restyutil"
	"tnfirefly-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/finance")

// Service scrapes the Tennessee Registry of Election Finance for
// each tracked committee's latest disclosure.
type Service struct {
	config Config
	store  Store
	client fetcher
}

// fetcher is the slice of resty the scraper uses, narrowed so tests
// can substitute canned pages.
type fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	FetchForm(ctx context.Context, url string, form map[string]string) (string, error)
}

type restyClient struct {
	client *resty.Client
}

func (r restyClient) Fetch(ctx context.Context, url string) (string, error) {
	res, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (r restyClient) FetchForm(ctx context.Context, url string, form map[string]string) (string, error) {
	res, err := r.client.R().SetContext(ctx).SetFormData(form).Post(url)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func NewService(config Config, store Store) Service {
	// the registry renders report pages slowly and requires the
	// session cookie picked up from the search page
	client := restyutil.NewClient("services/finance", restyutil.Options{
		Timeout:   time.Second * 60,
		Delay:     time.Second * 3,
		CookieJar: true,
	})
	return Service{config: config, store: store, client: restyClient{client}}
}

// Scrape refreshes every committee. Committees fail independently;
// the run fails only when none could be read, so one broken filing
// page never wipes the money table.
func (s Service) Scrape(ctx context.Context) (*File, error) {
	ctx, span := tracer.Start(ctx, "finance:Scrape")
	defer span.End()

	// establishes the session cookie
	if _, err := s.client.Fetch(ctx, s.config.SearchURL); err != nil {
		return nil, fmt.Errorf("open registry search page: %w", err)
	}

	file := s.store.Load()
	scraped := 0

	for _, committee := range s.config.Committees {
		record, err := s.scrapeCommittee(ctx, committee)
		if err != nil {
			slog.WarnContext(ctx, "failed to scrape committee",
				"candidate", committee.Candidate, "err", err)
			continue
		}
		scraped++
		upsert(file, record)
	}

	if scraped == 0 {
		return nil, fmt.Errorf("no committee pages could be read")
	}

	sort.SliceStable(file.Candidates, func(i, j int) bool {
		return file.Candidates[i].Raised > file.Candidates[j].Raised
	})
	file.LastUpdated = timezone.Now().Format("2006-01-02")

	if err := s.store.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "finance scrape complete",
		"committees", scraped, "total", len(s.config.Committees))
	return file, nil
}

func (s Service) scrapeCommittee(ctx context.Context, committee Committee) (CandidateFinance, error) {
	ctx, span := tracer.Start(ctx, "finance:scrapeCommittee")
	defer span.End()

	searchHTML, err := s.client.FetchForm(ctx, s.config.SearchURL, map[string]string{
		"searchType":    "committee",
		"committeeName": committee.Committee,
	})
	if err != nil {
		return CandidateFinance{}, fmt.Errorf("search committee: %w", err)
	}
	searchDoc, err := goquery.NewDocumentFromReader(strings.NewReader(searchHTML))
	if err != nil {
		return CandidateFinance{}, fmt.Errorf("parse search results: %w", err)
	}

	report, ok := latestReport(searchDoc, s.config.SearchURL)
	if !ok {
		return CandidateFinance{}, fmt.Errorf("no filed reports for %q", committee.Committee)
	}

	reportHTML, err := s.client.Fetch(ctx, report.Href)
	if err != nil {
		return CandidateFinance{}, fmt.Errorf("fetch report %q: %w", report.Name, err)
	}
	reportDoc, err := goquery.NewDocumentFromReader(strings.NewReader(reportHTML))
	if err != nil {
		return CandidateFinance{}, fmt.Errorf("parse report %q: %w", report.Name, err)
	}

	amounts := scanAmounts(reportDoc)
	record := CandidateFinance{
		Candidate:  committee.Candidate,
		Party:      committee.Party,
		Committee:  committee.Committee,
		Raised:     amounts["raised"],
		Spent:      amounts["spent"],
		CashOnHand: amounts["cashOnHand"],
		Loans:      amounts["loans"],
		ReportName: report.Name,
		ReportDate: report.Date,
		SourceURL:  report.Href,
	}
	record.WarChest = record.Raised + record.Loans
	return record, nil
}

// upsert replaces the candidate's scraped figures while preserving
// the editorial notes field, which only ever comes from a human.
func upsert(file *File, record CandidateFinance) {
	for i := range file.Candidates {
		if file.Candidates[i].MergeKey() != record.MergeKey() {
			continue
		}
		record.Notes = file.Candidates[i].Notes
		file.Candidates[i] = record
		return
	}
	file.Candidates = append(file.Candidates, record)
}
