package endorsements

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tnfirefly-backend/lib/restyutil"
	"tnfirefly-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/endorsements")

// Service watches the configured endorsement pages and mails a
// digest when new backers appear.
type Service struct {
	config Config
	store  Store
	client *resty.Client
	mailer Mailer
}

func NewService(config Config, store Store) Service {
	return Service{
		config: config,
		store:  store,
		client: restyutil.NewClient("services/endorsements", restyutil.Options{
			Delay: time.Second,
		}),
		mailer: NewMailer(config.Alerts),
	}
}

// Scrape re-reads every page, records endorsements it has not seen
// before, and sends one digest covering all of them. Pages fail
// independently; the run fails only when every page failed.
func (s Service) Scrape(ctx context.Context) (*File, error) {
	ctx, span := tracer.Start(ctx, "endorsements:Scrape")
	defer span.End()

	file := s.store.Load()
	pagesOK := 0
	var fresh []Endorsement

	for _, page := range s.config.Pages {
		scraped, err := s.scrapePage(ctx, page)
		if err != nil {
			slog.WarnContext(ctx, "failed to scrape endorsement page",
				"candidate", page.Candidate, "err", err)
			continue
		}
		pagesOK++
		fresh = append(fresh, s.record(file, scraped)...)
	}

	if pagesOK == 0 {
		return nil, fmt.Errorf("all %d endorsement pages failed", len(s.config.Pages))
	}

	if len(fresh) > 0 {
		s.alert(ctx, fresh)
	}

	file.LastUpdated = timezone.Now().Format("2006-01-02")
	if err := s.store.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "endorsement scrape complete",
		"total", len(file.Endorsements), "new", len(fresh))
	return file, nil
}

func (s Service) scrapePage(ctx context.Context, page Page) ([]Endorsement, error) {
	res, err := s.client.R().SetContext(ctx).Get(page.URL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return nil, err
	}
	return extractEndorsements(doc, page), nil
}

// record appends the endorsements not already on file and returns
// them. Existing entries keep their firstSeen date.
func (s Service) record(file *File, scraped []Endorsement) []Endorsement {
	known := make(map[string]bool, len(file.Endorsements))
	for _, e := range file.Endorsements {
		known[e.MergeKey()] = true
	}

	today := timezone.Now().Format("2006-01-02")
	var fresh []Endorsement
	for _, e := range scraped {
		if known[e.MergeKey()] {
			continue
		}
		known[e.MergeKey()] = true
		e.FirstSeen = today
		file.Endorsements = append(file.Endorsements, e)
		fresh = append(fresh, e)
	}
	return fresh
}

func (s Service) alert(ctx context.Context, fresh []Endorsement) {
	if !s.config.Alerts.Enabled {
		return
	}
	subject := fmt.Sprintf("TN governor's race: %d new endorsement(s)", len(fresh))
	if err := s.mailer.Send(subject, alertBody(fresh)); err != nil {
		slog.WarnContext(ctx, "failed to send endorsement alert", "err", err)
	}
}
