package news

// Feed is one RSS source the collector polls.
type Feed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Candidate struct {
	Name     string   `json:"name"`
	Party    string   `json:"party"`
	Patterns []string `json:"patterns"`
}

type Config struct {
	Feeds []Feed `json:"feeds"`
	// an article must mention at least one of these to be kept
	Keywords   []string    `json:"keywords"`
	Candidates []Candidate `json:"candidates"`
	// cap on stored articles, oldest dropped first
	MaxArticles int            `json:"max_articles"`
	Facebook    FacebookConfig `json:"facebook"`
}

func DefaultConfig() Config {
	return Config{
		Feeds: []Feed{
			{Name: "Tennessee Lookout", URL: "https://tennesseelookout.com/feed/"},
			{Name: "Tennessean Politics", URL: "https://www.tennessean.com/news/politics/rss/"},
			{Name: "WPLN News", URL: "https://wpln.org/feed/"},
			{Name: "Tennessee Star", URL: "https://tennesseestar.com/feed/"},
			{Name: "Google News (TN Governor)", URL: "https://news.google.com/rss/search?q=%22tennessee+governor%22+2026"},
		},
		Keywords: []string{
			"governor", "governor's race", "gubernatorial",
			"blackburn", "john rose", "republican primary",
			"tennessee primary",
		},
		Candidates: []Candidate{
			{Name: "Blackburn", Party: "rep", Patterns: []string{"blackburn", "marsha blackburn"}},
			{Name: "Rose", Party: "rep", Patterns: []string{"john rose"}},
			{Name: "Fritts", Party: "rep", Patterns: []string{"monty fritts", "fritts"}},
			{Name: "Pellegra", Party: "rep", Patterns: []string{"pellegra"}},
			{Name: "Green", Party: "dem", Patterns: []string{"jerri green"}},
			{Name: "Atwater", Party: "dem", Patterns: []string{"carnita atwater", "atwater"}},
			{Name: "Kurtz", Party: "dem", Patterns: []string{"adam kurtz", "kurtz"}},
			{Name: "Cyr", Party: "dem", Patterns: []string{"tim cyr"}},
			{Name: "Maxwell", Party: "ind", Patterns: []string{"maxwell"}},
		},
		MaxArticles: 200,
		Facebook: FacebookConfig{
			Actor:        "apify~facebook-posts-scraper",
			ResultsLimit: 15,
			MaxAgeDays:   90,
			Pages: []FacebookPage{
				{
					URL:       "https://www.facebook.com/votemarshablackburn",
					SourceKey: "Blackburn (Facebook)",
					Candidate: "Blackburn",
					Party:     "rep",
				},
				{
					URL:       "https://www.facebook.com/JohnRoseforTN",
					SourceKey: "Rose (Facebook)",
					Candidate: "Rose",
					Party:     "rep",
				},
				{
					URL:       "https://www.facebook.com/profile.php?id=61580207799026",
					SourceKey: "Fritts (Facebook)",
					Candidate: "Fritts",
					Party:     "rep",
				},
			},
		},
	}
}
