package news

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"tnfirefly-backend/lib/mergeutil"
	"tnfirefly-backend/lib/restyutil"
	"tnfirefly-backend/lib/textutil"
	"tnfirefly-backend/lib/timezone"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/news")

const summaryLength = 300

// tagRules are checked in order and every matching tag is applied.
// An article matching none falls back to the generic campaign tag.
var tagRules = []struct {
	tag      string
	patterns []string
}{
	{"finance", []string{"fundrais", "finance", "donor", "raised", "war chest", "money", "campaign fund", "contribution"}},
	{"policy", []string{"voucher", "education", "school", "teacher", "curriculum", "testing", "literacy", "medicaid", "healthcare"}},
	{"campaign", []string{"announce", "launch", "enter", "file", "candidacy", "campaign trail", "rally", "endorsement"}},
	{"controversy", []string{"controversy", "scandal", "viral", "backlash", "criticism", "outrage"}},
	{"analysis", []string{"poll", "survey", "rating", "forecast", "analysis", "polling"}},
	{"podcast", []string{"podcast", "on the fly", "episode", "interview"}},
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Service collects race coverage from the configured RSS feeds into
// the scraped file; Merge layers the editorial overrides on top into
// the published file.
type Service struct {
	config     Config
	scraped    Store
	published  Store
	manualPath string
	parser     *gofeed.Parser
	facebook   Facebook
}

func NewService(config Config, scraped, published Store, manualPath string) Service {
	parser := gofeed.NewParser()
	parser.UserAgent = "TNFirefly-GovernorTracker/1.0 (info@tnfirefly.com)"
	client := restyutil.NewClient("services/news", restyutil.Options{
		// apify actor runs block until the dataset is ready
		Timeout: time.Minute * 5,
	})
	return Service{
		config:     config,
		scraped:    scraped,
		published:  published,
		manualPath: manualPath,
		parser:     parser,
		facebook:   NewFacebook(client, config.Facebook),
	}
}

// Collect polls every feed, keeps the race-relevant items, and
// merges them into the stored file by article id. A dead feed is
// skipped; the run fails only when every feed failed.
func (s Service) Collect(ctx context.Context) (*File, error) {
	ctx, span := tracer.Start(ctx, "news:Collect")
	defer span.End()

	file := s.scraped.Load()
	feedsOK := 0

	for _, feed := range s.config.Feeds {
		parsed, err := s.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch feed",
				"feed", feed.Name, "err", err)
			continue
		}
		feedsOK++

		var articles []Article
		for _, item := range parsed.Items {
			article, ok := s.articleFromItem(feed, item)
			if !ok {
				continue
			}
			articles = append(articles, article)
		}
		file.Articles = mergeutil.UpdateByID(file.Articles, articles)
		slog.InfoContext(ctx, "collected feed",
			"feed", feed.Name, "kept", len(articles), "total", len(parsed.Items))
	}

	if feedsOK == 0 {
		return nil, fmt.Errorf("all %d news feeds failed", len(s.config.Feeds))
	}

	if max := s.config.MaxArticles; max > 0 && len(file.Articles) > max {
		file.Articles = file.Articles[:max]
	}

	file.LastUpdated = timezone.Now().Format("2006-01-02")
	if err := s.scraped.Save(file); err != nil {
		return nil, err
	}
	return file, nil
}

// CollectFacebook pulls candidate page posts into the scraped file.
// Posts are only ever added; a post already stored keeps whatever
// the earlier run saw, since pages edit old posts freely.
func (s Service) CollectFacebook(ctx context.Context) (*File, error) {
	ctx, span := tracer.Start(ctx, "news:CollectFacebook")
	defer span.End()

	posts, softFailures := s.facebook.Collect(ctx)
	if softFailures == len(s.config.Facebook.Pages) && softFailures > 0 {
		return nil, fmt.Errorf("all %d facebook pages failed", softFailures)
	}

	file := s.scraped.Load()
	added := appendNewArticles(file, posts)
	file.LastUpdated = timezone.Now().Format("2006-01-02")
	if err := s.scraped.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "facebook collection complete",
		"added", added, "total", len(file.Articles))
	return file, nil
}

// appendNewArticles adds articles whose id is not yet stored and
// re-sorts newest first. Stored articles are never replaced here.
func appendNewArticles(file *File, additions []Article) int {
	known := make(map[string]bool, len(file.Articles))
	for _, a := range file.Articles {
		known[a.ID] = true
	}
	added := 0
	for _, a := range additions {
		if known[a.ID] {
			continue
		}
		file.Articles = append(file.Articles, a)
		known[a.ID] = true
		added++
	}
	mergeutil.SortByDateDesc(file.Articles)
	return added
}

// Merge rebuilds the published file from the scraped articles plus
// the override layer. Manual articles win on id collision.
func (s Service) Merge(ctx context.Context) (*File, error) {
	_, span := tracer.Start(ctx, "news:Merge")
	defer span.End()

	manual, err := ReadManual(s.manualPath)
	if err != nil {
		return nil, err
	}

	file := s.scraped.Load()
	file.Articles = mergeutil.OverlayByID(file.Articles, manual.Articles)

	now := timezone.Now()
	file.LastMerged = now.Format(time.RFC3339)
	file.LastUpdated = now.Format("2006-01-02")

	if err := s.published.Save(file); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "news merge complete",
		"articles", len(file.Articles), "manualArticles", len(manual.Articles))
	return file, nil
}

// articleFromItem normalizes one feed item, returning false for
// items that never mention the race.
func (s Service) articleFromItem(feed Feed, item *gofeed.Item) (Article, bool) {
	title := strings.TrimSpace(item.Title)
	body := cleanSummary(item.Description)
	if body == "" {
		body = cleanSummary(item.Content)
	}

	text := strings.ToLower(title + " " + body)
	if !s.relevant(text) {
		return Article{}, false
	}

	published := ""
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.In(timezone.Location).Format("2006-01-02")
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.In(timezone.Location).Format("2006-01-02")
	}

	candidates, parties := s.detectCandidates(text)

	return Article{
		ID:         ArticleID(title, published),
		Title:      title,
		Summary:    textutil.Truncate(body, summaryLength),
		URL:        item.Link,
		Source:     feed.Name,
		Published:  published,
		Candidates: candidates,
		Parties:    parties,
		Tags:       detectTags(text),
	}, true
}

func (s Service) relevant(text string) bool {
	for _, keyword := range s.config.Keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func (s Service) detectCandidates(text string) (candidates, parties []string) {
	seenParty := map[string]bool{}
	for _, cand := range s.config.Candidates {
		if !textutil.MatchName(text, cand.Patterns) {
			continue
		}
		candidates = append(candidates, cand.Name)
		if !seenParty[cand.Party] {
			seenParty[cand.Party] = true
			parties = append(parties, cand.Party)
		}
	}
	return candidates, parties
}

func detectTags(text string) []string {
	var tags []string
	for _, rule := range tagRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(text, pattern) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		tags = []string{"campaign"}
	}
	return tags
}

func cleanSummary(raw string) string {
	text := htmlTagRegex.ReplaceAllString(raw, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
