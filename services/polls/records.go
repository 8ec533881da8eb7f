package polls

import (
	"tnfirefly-backend/lib/textutil"
)

const (
	KindPrimary = "primary"
	KindGeneral = "general_hypothetical"
)

// PollResult is one candidate's share inside a poll, in the order
// the source published it.
type PollResult struct {
	Candidate string  `json:"candidate"`
	Party     string  `json:"party,omitempty"`
	Percent   float64 `json:"percent"`
}

// PollRecord is one polled snapshot of candidate support. Its id is
// derived from (pollster, startDate, kind) so re-scraping the same
// poll always lands on the same identity and replaces in place.
type PollRecord struct {
	ID            string       `json:"id"`
	Pollster      string       `json:"pollster"`
	Kind          string       `json:"kind"`
	StartDate     string       `json:"startDate,omitempty"`
	EndDate       string       `json:"endDate,omitempty"`
	SampleSize    string       `json:"sampleSize,omitempty"`
	MarginOfError string       `json:"marginOfError,omitempty"`
	Results       []PollResult `json:"results"`
	Matchup       string       `json:"matchup,omitempty"`
	SourceOrigin  string       `json:"source"`
	SourceURL     string       `json:"url,omitempty"`
}

func PollID(pollster, startDate, kind string) string {
	return textutil.Slugify(pollster, startDate, kind)
}

func (p PollRecord) MergeKey() string {
	if p.ID != "" {
		return p.ID
	}
	return PollID(p.Pollster, p.StartDate, p.Kind)
}

func (p PollRecord) SortDate() string { return p.StartDate }

// Undecided returns the undecided share if the poll reported one.
func (p PollRecord) Undecided() (float64, bool) {
	for _, r := range p.Results {
		if textutil.NormalizeName(r.Candidate) == "undecided" {
			return r.Percent, true
		}
	}
	return 0, false
}

// Support returns the named candidate's share if the poll includes it.
func (p PollRecord) Support(candidate string) (float64, bool) {
	want := textutil.NormalizeName(candidate)
	for _, r := range p.Results {
		if textutil.NormalizeName(r.Candidate) == want {
			return r.Percent, true
		}
	}
	return 0, false
}

// ApprovalRecord is one approval/favorability reading for a public
// figure, keyed by who, which poll, and which source reported it.
type ApprovalRecord struct {
	Subject      string  `json:"subject"`
	Approve      float64 `json:"approve"`
	Disapprove   float64 `json:"disapprove,omitempty"`
	PollLabel    string  `json:"poll"`
	SourceOrigin string  `json:"source"`
	SourceURL    string  `json:"url,omitempty"`
}

func (a ApprovalRecord) MergeKey() string {
	return textutil.Slugify(a.Subject, a.PollLabel, a.SourceOrigin)
}

func (a ApprovalRecord) SecondaryKey() string {
	return a.SourceOrigin + "-" + a.PollLabel
}

// IssueRecord is one public-opinion reading on a policy topic.
type IssueRecord struct {
	Topic        string  `json:"topic"`
	Value        float64 `json:"value"`
	PollLabel    string  `json:"poll"`
	SourceOrigin string  `json:"source"`
	SourceURL    string  `json:"url,omitempty"`
}

func (i IssueRecord) MergeKey() string {
	return textutil.Slugify(i.Topic, i.PollLabel, i.SourceOrigin)
}

// SecondaryKey dedupes issue entries inside a topic group.
func (i IssueRecord) SecondaryKey() string {
	return i.SourceOrigin + "-" + i.PollLabel
}

// RaceRating is a forecaster's qualitative call on the race. Ratings
// are current state rather than a log: the set from the most recent
// successful scrape replaces the stored set wholesale, so there is
// no merge key.
type RaceRating struct {
	Forecaster string `json:"source"`
	Rating     string `json:"rating"`
	AsOf       string `json:"date,omitempty"`
	SourceURL  string `json:"url,omitempty"`
}

// EnvironmentMetric is a miscellaneous political-climate reading,
// right-track/wrong-track and the like.
type EnvironmentMetric struct {
	Metric       string  `json:"metric"`
	Value        float64 `json:"value"`
	PollLabel    string  `json:"poll"`
	SourceOrigin string  `json:"source"`
	SourceURL    string  `json:"url,omitempty"`
}

func (e EnvironmentMetric) MergeKey() string {
	return textutil.Slugify(e.Metric, e.PollLabel, e.SourceOrigin)
}

func (e EnvironmentMetric) SecondaryKey() string {
	return e.SourceOrigin + "-" + e.PollLabel
}

// Source describes one polling origin the tracker watches.
type Source struct {
	Name       string  `json:"name"`
	Type       string  `json:"type,omitempty"`
	Frequency  string  `json:"frequency,omitempty"`
	SampleSize int     `json:"sampleSize,omitempty"`
	Margin     float64 `json:"margin,omitempty"`
	URL        string  `json:"url,omitempty"`
	RSS        string  `json:"rss,omitempty"`
}

// AggregatorDump holds whatever static rows a JavaScript-rendered
// aggregator exposed. The rows stay raw and unclassified, they are
// surfaced for editors but never merged into normalized records.
type AggregatorDump struct {
	Source  string     `json:"source"`
	URL     string     `json:"url,omitempty"`
	HasData bool       `json:"hasData"`
	Rows    [][]string `json:"rows"`
}

// TrendPoint is one primary poll's tracked-candidate percentages.
type TrendPoint struct {
	Date     string             `json:"date"`
	Pollster string             `json:"pollster"`
	Support  map[string]float64 `json:"support"`
}

type Trendline struct {
	Description string       `json:"description"`
	Data        []TrendPoint `json:"data"`
}

// File is the polls.json output schema.
type File struct {
	LastUpdated          string                         `json:"lastUpdated"`
	LastScraped          string                         `json:"lastScraped"`
	LastMerged           string                         `json:"lastMerged,omitempty"`
	PollingSources       []Source                       `json:"pollingSources"`
	Polls                []PollRecord                   `json:"polls"`
	GeneralPolls         []PollRecord                   `json:"generalPolls"`
	RaceRatings          []RaceRating                   `json:"raceRatings"`
	Trendline            Trendline                      `json:"trendline"`
	ApprovalRatings      map[string][]ApprovalRecord    `json:"approvalRatings"`
	IssuePolling         map[string][]IssueRecord       `json:"issuePolling"`
	PoliticalEnvironment map[string][]EnvironmentMetric `json:"politicalEnvironment"`
	Aggregators          map[string]AggregatorDump      `json:"aggregators"`
	Analysis             string                         `json:"analysis"`
}

// NewFile is the default schema used when no prior state exists. It
// is a constructor rather than a shared value so runs never alias
// each other's slices.
func NewFile() *File {
	return &File{
		PollingSources:       []Source{},
		Polls:                []PollRecord{},
		GeneralPolls:         []PollRecord{},
		RaceRatings:          []RaceRating{},
		Trendline:            Trendline{Data: []TrendPoint{}},
		ApprovalRatings:      map[string][]ApprovalRecord{},
		IssuePolling:         map[string][]IssueRecord{},
		PoliticalEnvironment: map[string][]EnvironmentMetric{},
		Aggregators:          map[string]AggregatorDump{},
	}
}

// Manual is the polls section of manual.json. Manual entries always
// win over scraped entries sharing an identity key.
type Manual struct {
	Sources      []Source                 `json:"sources"`
	Polls        []PollRecord             `json:"polls"`
	GeneralPolls []PollRecord             `json:"generalPolls"`
	IssuePolling map[string][]IssueRecord `json:"issuePolling"`
	Trendline    Trendline                `json:"trendline"`
	Analysis     string                   `json:"analysis"`
}
