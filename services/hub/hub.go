package hub

import (
	"context"
	"log/slog"
	"time"

	"tnfirefly-backend/lib/jsonstore"
	"tnfirefly-backend/lib/timezone"
	"tnfirefly-backend/services/endorsements"
	"tnfirefly-backend/services/finance"
	"tnfirefly-backend/services/news"
	"tnfirefly-backend/services/polls"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/hub")

// Summary is hub-summary.json, the one-page digest the site's hub
// renders without loading the full per-service files.
type Summary struct {
	GeneratedAt  string              `json:"generatedAt"`
	Polls        PollsSummary        `json:"polls"`
	News         NewsSummary         `json:"news"`
	Finance      FinanceSummary      `json:"finance"`
	Endorsements EndorsementsSummary `json:"endorsements"`
}

type LatestPoll struct {
	Pollster  string  `json:"pollster"`
	StartDate string  `json:"startDate"`
	Leader    string  `json:"leader,omitempty"`
	Support   float64 `json:"support,omitempty"`
}

type PollsSummary struct {
	LastUpdated      string             `json:"lastUpdated,omitempty"`
	PollCount        int                `json:"pollCount"`
	GeneralPollCount int                `json:"generalPollCount"`
	Latest           *LatestPoll        `json:"latestPoll,omitempty"`
	RaceRatings      []polls.RaceRating `json:"raceRatings"`
	TrendDescription string             `json:"trendDescription,omitempty"`
	Analysis         string             `json:"analysis,omitempty"`
}

type Headline struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
	URL       string `json:"url,omitempty"`
}

type NewsSummary struct {
	LastUpdated  string     `json:"lastUpdated,omitempty"`
	ArticleCount int        `json:"articleCount"`
	Latest       []Headline `json:"latest"`
}

type FinanceSummary struct {
	LastUpdated  string  `json:"lastUpdated,omitempty"`
	Leader       string  `json:"leader,omitempty"`
	LeaderRaised float64 `json:"leaderRaised,omitempty"`
	TotalRaised  float64 `json:"totalRaised"`
}

type EndorsementsSummary struct {
	LastUpdated string         `json:"lastUpdated,omitempty"`
	Count       int            `json:"count"`
	ByCandidate map[string]int `json:"byCandidate"`
	Latest      []string       `json:"latest"`
}

func NewSummary() *Summary {
	return &Summary{
		Polls: PollsSummary{RaceRatings: []polls.RaceRating{}},
		News:  NewsSummary{Latest: []Headline{}},
		Endorsements: EndorsementsSummary{
			ByCandidate: map[string]int{},
			Latest:      []string{},
		},
	}
}

// Store persists hub-summary.json.
type Store = jsonstore.Store[Summary]

func NewStore(path string) Store {
	return jsonstore.New(path, NewSummary)
}

const latestHeadlines = 3
const latestEndorsers = 5

// Service composes the digest from whatever the per-service files
// currently hold. It never scrapes; a service that has not run yet
// simply contributes an empty section.
type Service struct {
	polls        polls.Store
	news         news.Store
	finance      finance.Store
	endorsements endorsements.Store
	out          Store
}

func NewService(pollsStore polls.Store, newsStore news.Store, financeStore finance.Store, endorsementsStore endorsements.Store, out Store) Service {
	return Service{
		polls:        pollsStore,
		news:         newsStore,
		finance:      financeStore,
		endorsements: endorsementsStore,
		out:          out,
	}
}

func (s Service) Build(ctx context.Context) (*Summary, error) {
	_, span := tracer.Start(ctx, "hub:Build")
	defer span.End()

	summary := NewSummary()
	summary.GeneratedAt = timezone.Now().Format(time.RFC3339)
	summary.Polls = summarizePolls(s.polls.Load())
	summary.News = summarizeNews(s.news.Load())
	summary.Finance = summarizeFinance(s.finance.Load())
	summary.Endorsements = summarizeEndorsements(s.endorsements.Load())

	if err := s.out.Save(summary); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "hub summary built",
		"polls", summary.Polls.PollCount,
		"articles", summary.News.ArticleCount,
		"endorsements", summary.Endorsements.Count)
	return summary, nil
}

func summarizePolls(file *polls.File) PollsSummary {
	summary := PollsSummary{
		LastUpdated:      file.LastUpdated,
		PollCount:        len(file.Polls),
		GeneralPollCount: len(file.GeneralPolls),
		RaceRatings:      file.RaceRatings,
		TrendDescription: file.Trendline.Description,
		Analysis:         file.Analysis,
	}
	if summary.RaceRatings == nil {
		summary.RaceRatings = []polls.RaceRating{}
	}

	// polls are stored newest first with undated records last
	if len(file.Polls) > 0 && file.Polls[0].StartDate != "" {
		record := file.Polls[0]
		latest := &LatestPoll{Pollster: record.Pollster, StartDate: record.StartDate}
		for _, result := range record.Results {
			if result.Candidate == "Undecided" || result.Candidate == "Other" {
				continue
			}
			if result.Percent > latest.Support {
				latest.Leader = result.Candidate
				latest.Support = result.Percent
			}
		}
		summary.Latest = latest
	}
	return summary
}

func summarizeNews(file *news.File) NewsSummary {
	summary := NewsSummary{
		LastUpdated:  file.LastUpdated,
		ArticleCount: len(file.Articles),
		Latest:       []Headline{},
	}
	for _, article := range file.Articles {
		if len(summary.Latest) == latestHeadlines {
			break
		}
		summary.Latest = append(summary.Latest, Headline{
			Title:     article.Title,
			Source:    article.Source,
			Published: article.Published,
			URL:       article.URL,
		})
	}
	return summary
}

func summarizeFinance(file *finance.File) FinanceSummary {
	summary := FinanceSummary{LastUpdated: file.LastUpdated}
	for i, candidate := range file.Candidates {
		// candidates are kept raised-descending
		if i == 0 {
			summary.Leader = candidate.Candidate
			summary.LeaderRaised = candidate.Raised
		}
		summary.TotalRaised += candidate.Raised
	}
	return summary
}

func summarizeEndorsements(file *endorsements.File) EndorsementsSummary {
	summary := EndorsementsSummary{
		LastUpdated: file.LastUpdated,
		Count:       len(file.Endorsements),
		ByCandidate: map[string]int{},
		Latest:      []string{},
	}
	for _, e := range file.Endorsements {
		summary.ByCandidate[e.Candidate]++
	}
	// endorsements append in discovery order, the newest are at the
	// tail
	for i := len(file.Endorsements) - 1; i >= 0 && len(summary.Latest) < latestEndorsers; i-- {
		summary.Latest = append(summary.Latest, file.Endorsements[i].Endorser)
	}
	return summary
}
