package news

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tnfirefly-backend/lib/textutil"
	"tnfirefly-backend/lib/timezone"

	"github.com/go-resty/resty/v2"
)

// FacebookPage is one candidate page to pull posts from.
type FacebookPage struct {
	URL       string `json:"url"`
	SourceKey string `json:"source_key"`
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
}

// FacebookConfig drives the Apify-backed page scraper. Posts come
// through Apify's managed actor, which handles the anti-bot side;
// the token is read from APIFY_TOKEN at run time.
type FacebookConfig struct {
	Pages        []FacebookPage `json:"pages"`
	Actor        string         `json:"actor"`
	ResultsLimit int            `json:"results_limit"`
	MaxAgeDays   int            `json:"max_age_days"`
}

const apifyRunSyncURL = "https://api.apify.com/v2/acts/%s/run-sync-get-dataset-items"

// postTitleLength caps the synthesized title when no sentence break
// lands early enough.
const postTitleLength = 120

var postSkipSignals = []string{
	"happy birthday", "merry christmas", "happy thanksgiving",
	"happy easter", "rest in peace", "condolences",
	"office hours this week", "flag day",
}

// Facebook pulls candidate page posts and normalizes them into
// articles alongside the RSS coverage.
type Facebook struct {
	client *resty.Client
	config FacebookConfig
	token  func() string
}

func NewFacebook(client *resty.Client, config FacebookConfig) Facebook {
	return Facebook{
		client: client,
		config: config,
		token:  func() string { return os.Getenv("APIFY_TOKEN") },
	}
}

type apifyPost struct {
	Text    string `json:"text"`
	Message string `json:"message"`
	Time    string `json:"time"`
	URL     string `json:"url"`
	PostURL string `json:"postUrl"`
}

// Collect fetches every configured page. A missing token skips the
// whole source with a warning rather than failing the run, Facebook
// coverage is additive.
func (f Facebook) Collect(ctx context.Context) ([]Article, int) {
	token := f.token()
	if token == "" {
		slog.WarnContext(ctx, "APIFY_TOKEN not set, skipping facebook posts")
		return nil, 0
	}

	cutoff := timezone.Now().AddDate(0, 0, -f.config.MaxAgeDays)
	var articles []Article
	softFailures := 0

	for _, page := range f.config.Pages {
		var posts []apifyPost
		resp, err := f.client.R().
			SetContext(ctx).
			SetQueryParam("token", token).
			SetBody(map[string]any{
				"startUrls":    []map[string]string{{"url": page.URL}},
				"resultsLimit": f.config.ResultsLimit,
			}).
			SetResult(&posts).
			Post(fmt.Sprintf(apifyRunSyncURL, f.config.Actor))
		if err != nil || resp.IsError() {
			softFailures++
			slog.WarnContext(ctx, "facebook page fetch failed",
				"page", page.SourceKey, "err", err)
			continue
		}

		kept := 0
		for _, post := range posts {
			article, ok := f.articleFromPost(page, post, cutoff)
			if !ok {
				continue
			}
			articles = append(articles, article)
			kept++
		}
		slog.InfoContext(ctx, "collected facebook page",
			"page", page.SourceKey, "kept", kept, "total", len(posts))
	}
	return articles, softFailures
}

func (f Facebook) articleFromPost(page FacebookPage, post apifyPost, cutoff time.Time) (Article, bool) {
	text := strings.TrimSpace(post.Text)
	if text == "" {
		text = strings.TrimSpace(post.Message)
	}
	if !relevantPost(text) {
		return Article{}, false
	}

	published := timezone.Now().Format("2006-01-02")
	if post.Time != "" {
		if parsed, err := time.Parse(time.RFC3339, post.Time); err == nil {
			if parsed.Before(cutoff) {
				return Article{}, false
			}
			published = parsed.In(timezone.Location).Format("2006-01-02")
		}
	}

	url := post.URL
	if url == "" {
		url = post.PostURL
	}

	tags := detectTags(strings.ToLower(text))
	if !contains(tags, "campaign") {
		tags = append(tags, "campaign")
	}

	return Article{
		ID:         FacebookPostID(text, published),
		Title:      postTitle(text),
		Summary:    textutil.Truncate(text, summaryLength),
		URL:        url,
		Source:     page.SourceKey,
		Published:  published,
		Candidates: []string{page.Candidate},
		Parties:    []string{page.Party},
		Tags:       tags,
	}, true
}

// FacebookPostID hashes the post's leading text plus date. Posts have
// no stable ids of their own; the prefix keeps them from ever
// colliding with feed article ids.
func FacebookPostID(text, published string) string {
	head := text
	if len(head) > 100 {
		head = head[:100]
	}
	raw := strings.ToLower("fb-" + head + "-" + published)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])[:12]
}

// relevantPost drops empty, trivial, and generic constituent posts
// (holiday wishes, condolences) that say nothing about the race.
func relevantPost(text string) bool {
	if len(strings.TrimSpace(text)) < 20 {
		return false
	}
	lower := strings.ToLower(text)
	for _, signal := range postSkipSignals {
		if strings.Contains(lower, signal) {
			return false
		}
	}
	return true
}

// postTitle takes the first sentence when it breaks early enough,
// otherwise truncates at a word boundary.
func postTitle(text string) string {
	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		idx := strings.Index(text, sep)
		if idx > 20 && idx < postTitleLength {
			return strings.TrimSpace(text[:idx+1])
		}
	}
	if len(text) > postTitleLength {
		cut := text[:postTitleLength]
		if space := strings.LastIndex(cut, " "); space > 0 {
			cut = cut[:space]
		}
		return cut + "..."
	}
	return strings.TrimSpace(text)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
