package polls

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"tnfirefly-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const tennSightOrigin = "Beacon Center / TennSight"

// templates for a quantity are evaluated in priority order and the
// first match wins for that quantity within one article. Articles
// routinely phrase the same number several ways, collecting every
// match would double-count it.
type quantityTemplates struct {
	quantity string
	patterns []*regexp.Regexp
}

func firstPercent(text string, patterns []*regexp.Regexp) (float64, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 0 || v > 100 {
			continue
		}
		return v, true
	}
	return 0, false
}

var supportTemplates = map[string][]*regexp.Regexp{
	"Blackburn": {
		regexp.MustCompile(`(?is)(\d+)%[^%.]*?(?:support|back|for)\s+(?:senator\s+)?(?:marsha\s+)?blackburn`),
		regexp.MustCompile(`(?is)blackburn\s+(?:leads?\s+with|at|with|polling\s+at)\s+(\d+)%`),
	},
	"Rose": {
		regexp.MustCompile(`(?is)(?:john\s+)?rose\s+(?:garnering|coming\s+in[^%]{0,40}?at|at|with)\s+(\d+)%`),
		regexp.MustCompile(`(?is)(\d+)%[^%.]*?(?:support|back|for)\s+(?:john\s+)?rose`),
	},
	"Fritts": {
		regexp.MustCompile(`(?is)(?:monty\s+)?fritts\s+(?:garnering|coming\s+in[^%]{0,40}?at|at|with)\s+(\d+)%`),
		regexp.MustCompile(`(?is)(\d+)%[^%.]*?(?:support|back|for)\s+(?:monty\s+)?fritts`),
	},
}

var undecidedTemplates = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(\d+)%[^%.]*?(?:remain\s+)?undecided`),
	regexp.MustCompile(`(?is)undecided[^%.]{0,60}?(\d+)%`),
}

var narrativeQuantities = []quantityTemplates{
	{
		quantity: "Governor Lee approval",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)governor\s+(?:bill\s+)?lee[^.]*?(\d+)%[^%.]*?approv`),
			regexp.MustCompile(`(?is)(\d+)%[^%.]*?approve[^.]*?governor\s+(?:bill\s+)?lee`),
		},
	},
	{
		quantity: "Trump approval",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:president\s+)?trump[^.]*?(\d+)%[^%.]*?approv`),
			regexp.MustCompile(`(?is)(\d+)%[^%.]*?approve[^.]*?trump`),
		},
	},
	{
		quantity: "school choice",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(\d+)%[^%.]*?(?:school\s+choice|education\s+freedom|vouchers?)`),
			regexp.MustCompile(`(?is)(?:school\s+choice|education\s+freedom)[^.%]{0,80}?(\d+)%`),
		},
	},
	{
		quantity: "right track",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(\d+)%[^%.]*?right\s+track`),
			regexp.MustCompile(`(?is)right\s+track[^.%]{0,60}?(\d+)%`),
		},
	},
}

var fieldworkRegex = regexp.MustCompile(`(?i)fieldwork:?\s*([^\n.]+)`)

// tennSightFacts is everything one poll article yields.
type tennSightFacts struct {
	Poll        *PollRecord
	Approvals   []ApprovalRecord
	Issues      []IssueRecord
	Environment []EnvironmentMetric
}

// TennSight reads the Beacon Center's narrative poll write-ups: no
// structured tables, just article prose the templates pick apart.
type TennSight struct {
	client *resty.Client
	config Config
}

func NewTennSight(client *resty.Client, config Config) TennSight {
	return TennSight{client: client, config: config}
}

var monthSlugs = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

// pollLinks pulls individual poll-page links out of the elections
// index; TennSight slugs its poll pages by month.
func pollLinks(ctx context.Context, doc *goquery.Document) []string {
	var links []string
	seen := map[string]bool{}
	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a")) {
		href := anchor.Href
		if !strings.Contains(href, "/polls/") {
			continue
		}
		monthInHref := false
		for _, m := range monthSlugs {
			if strings.Contains(href, m) {
				monthInHref = true
				break
			}
		}
		if !monthInHref {
			continue
		}
		if !strings.HasPrefix(href, "http") {
			href = "https://tennsight.com" + href
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}
	return links
}

// pollLabelFromURL turns ".../polls/january-2026/" into "January 2026".
func pollLabelFromURL(pollURL string) string {
	trimmed := strings.Trim(pollURL, "/")
	slug := trimmed[strings.LastIndex(trimmed, "/")+1:]
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractFacts runs the template lists over one article's text.
// Classification is implicit in which template matched, there is no
// separate classifier step for narrative sources.
func (t TennSight) extractFacts(pageText, pollURL string) tennSightFacts {
	var facts tennSightFacts
	label := pollLabelFromURL(pollURL)

	lower := strings.ToLower(pageText)
	if !strings.Contains(lower, "governor") && !strings.Contains(lower, "blackburn") {
		return facts
	}

	facts.Poll = t.extractPrimaryPoll(pageText, pollURL)

	for _, q := range narrativeQuantities {
		value, ok := firstPercent(pageText, q.patterns)
		if !ok {
			continue
		}
		switch q.quantity {
		case "Governor Lee approval":
			facts.Approvals = append(facts.Approvals, ApprovalRecord{
				Subject:      "Governor Lee",
				Approve:      value,
				PollLabel:    label,
				SourceOrigin: tennSightOrigin,
				SourceURL:    pollURL,
			})
		case "Trump approval":
			facts.Approvals = append(facts.Approvals, ApprovalRecord{
				Subject:      "Trump",
				Approve:      value,
				PollLabel:    label,
				SourceOrigin: tennSightOrigin,
				SourceURL:    pollURL,
			})
		case "school choice":
			facts.Issues = append(facts.Issues, IssueRecord{
				Topic:        "school-choice",
				Value:        value,
				PollLabel:    label,
				SourceOrigin: tennSightOrigin,
				SourceURL:    pollURL,
			})
		case "right track":
			facts.Environment = append(facts.Environment, EnvironmentMetric{
				Metric:       "right-track",
				Value:        value,
				PollLabel:    label,
				SourceOrigin: tennSightOrigin,
				SourceURL:    pollURL,
			})
		}
	}

	return facts
}

// extractPrimaryPoll builds the primary-race poll record when the
// article names the lead candidate's share; a write-up without it
// places nothing on the horse race.
func (t TennSight) extractPrimaryPoll(pageText, pollURL string) *PollRecord {
	lead := t.config.LeadCandidate()
	if _, ok := firstPercent(pageText, supportTemplates[lead.Name]); !ok {
		return nil
	}

	var results []PollResult
	for _, cand := range t.config.Candidates {
		patterns, ok := supportTemplates[cand.Name]
		if !ok {
			continue
		}
		value, ok := firstPercent(pageText, patterns)
		if !ok {
			continue
		}
		results = append(results, PollResult{
			Candidate: cand.Name,
			Party:     cand.Party,
			Percent:   value,
		})
	}
	if undecided, ok := firstPercent(pageText, undecidedTemplates); ok {
		results = append(results, PollResult{Candidate: "Undecided", Percent: undecided})
	}

	start, end := "", ""
	if m := fieldworkRegex.FindStringSubmatch(pageText); m != nil {
		start, end = ParseFieldwork(m[1])
	}

	record := &PollRecord{
		Pollster:     tennSightOrigin,
		Kind:         KindPrimary,
		StartDate:    start,
		EndDate:      end,
		Results:      results,
		SourceOrigin: tennSightOrigin,
		SourceURL:    pollURL,
	}
	record.ID = PollID(record.Pollster, record.StartDate, record.Kind)

	for _, s := range t.config.Sources {
		if s.Name != tennSightOrigin {
			continue
		}
		if s.SampleSize > 0 {
			record.SampleSize = strconv.Itoa(s.SampleSize) + " RV"
		}
		if s.Margin > 0 {
			record.MarginOfError = "±" + strconv.FormatFloat(s.Margin, 'f', -1, 64) + "%"
		}
	}

	return record
}

const maxPollPages = 4

// Scrape fetches the elections index, follows the most recent poll
// pages, and extracts whatever facts their prose yields. Per-page
// failures are counted and skipped, a single dead page must not
// sink the rest of the run.
func (t TennSight) Scrape(ctx context.Context) ([]tennSightFacts, int) {
	var softFailures int

	res, err := t.client.R().SetContext(ctx).Get(t.config.TennSightElections)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch tennsight elections index", "err", err)
		return nil, 1
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse tennsight elections index", "err", err)
		return nil, 1
	}

	links := pollLinks(ctx, doc)
	slog.InfoContext(ctx, "found tennsight poll pages", "count", len(links))
	if len(links) > maxPollPages {
		links = links[:maxPollPages]
	}

	var all []tennSightFacts
	for _, link := range links {
		pageRes, err := t.client.R().SetContext(ctx).Get(link)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch tennsight poll page", "url", link, "err", err)
			softFailures++
			continue
		}
		pageDoc, err := goquery.NewDocumentFromReader(strings.NewReader(pageRes.String()))
		if err != nil {
			slog.WarnContext(ctx, "failed to parse tennsight poll page", "url", link, "err", err)
			softFailures++
			continue
		}

		facts := t.extractFacts(pageDoc.Text(), link)
		if facts.Poll == nil && len(facts.Approvals) == 0 &&
			len(facts.Issues) == 0 && len(facts.Environment) == 0 {
			continue
		}
		all = append(all, facts)
	}

	return all, softFailures
}
