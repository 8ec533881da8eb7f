package polls

// Candidate is one tracked contender. Patterns are the lowercase
// substrings a source might use to refer to them.
type Candidate struct {
	Name     string   `json:"name"`
	Party    string   `json:"party"`
	Patterns []string `json:"patterns"`
}

type Config struct {
	// narrative-text source (Beacon Center / TennSight)
	TennSightElections  string `json:"tennsight_elections"`
	TennSightPollsIndex string `json:"tennsight_polls_index"`
	// structured-table aggregator
	ToWinURL string `json:"towin_url"`
	// passive aggregators whose tables render client-side,
	// label -> url
	RealClear map[string]string `json:"realclear"`

	// tracked roster; the first entry is the candidate the trend
	// series follows
	Candidates []Candidate `json:"candidates"`
	// forecaster names whose presence marks a race-rating table
	Forecasters []string `json:"forecasters"`
	// polling source reference list carried into the output
	Sources []Source `json:"sources"`
}

// DefaultConfig returns the 2026 TN governor race wiring. A fresh
// value per call, callers may mutate their copy freely.
func DefaultConfig() Config {
	return Config{
		TennSightElections:  "https://tennsight.com/elections/",
		TennSightPollsIndex: "https://tennsight.com/polls/",
		ToWinURL:            "https://www.270towin.com/2026-governor-polls/tennessee",
		RealClear: map[string]string{
			"RealClearPolling (Republican Primary)": "https://www.realclearpolling.com/polls/governor/republican-primary/2026/tennessee",
			"RealClearPolling (General)":            "https://www.realclearpolling.com/polls/governor/general/2026/tennessee",
		},
		Candidates: []Candidate{
			{Name: "Blackburn", Party: "rep", Patterns: []string{"blackburn", "marsha blackburn"}},
			{Name: "Rose", Party: "rep", Patterns: []string{"john rose", "rose"}},
			{Name: "Fritts", Party: "rep", Patterns: []string{"monty fritts", "fritts"}},
			{Name: "Pellegra", Party: "rep", Patterns: []string{"cito pellegra", "pellegra"}},
			{Name: "Green", Party: "dem", Patterns: []string{"jerri green", "green"}},
			{Name: "Atwater", Party: "dem", Patterns: []string{"carnita atwater", "atwater"}},
			{Name: "Kurtz", Party: "dem", Patterns: []string{"adam kurtz", "ditch kurtz", "kurtz"}},
			{Name: "Cyr", Party: "dem", Patterns: []string{"tim cyr", "cyr"}},
			{Name: "Maxwell", Party: "ind", Patterns: []string{"stephen maxwell", "maxwell"}},
		},
		Forecasters: []string{
			"cook political report",
			"sabato",
			"crystal ball",
			"inside elections",
			"decision desk",
			"split ticket",
		},
		Sources: []Source{
			{
				Name:       "Beacon Center / TennSight",
				Type:       "primary",
				Frequency:  "quarterly",
				SampleSize: 1200,
				Margin:     2.77,
				URL:        "https://tennsight.com/polls/",
				RSS:        "https://tennsight.com/feed/",
			},
			{
				Name:       "Vanderbilt Poll",
				Type:       "primary",
				Frequency:  "semiannual",
				SampleSize: 1000,
				URL:        "https://www.vanderbilt.edu/csdi/vupoll-home.php",
			},
			{
				Name:       "MTSU Poll",
				Type:       "secondary",
				Frequency:  "periodic",
				SampleSize: 600,
				Margin:     4.0,
				URL:        "http://mtsupoll.org/",
			},
			{
				Name: "RealClearPolling",
				Type: "aggregator",
				URL:  "https://www.realclearpolling.com/polls/governor/republican-primary/2026/tennessee",
			},
			{
				Name: "270toWin",
				Type: "aggregator",
				URL:  "https://www.270towin.com/2026-governor-polls/tennessee",
			},
			{
				Name: "Ballotpedia",
				Type: "reference",
				URL:  "https://ballotpedia.org/Tennessee_gubernatorial_election,_2026",
			},
		},
	}
}

// LeadCandidate is the candidate the trend series follows.
func (c Config) LeadCandidate() Candidate {
	if len(c.Candidates) == 0 {
		return Candidate{}
	}
	return c.Candidates[0]
}
