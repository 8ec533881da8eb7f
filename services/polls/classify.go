package polls

import (
	"regexp"
	"strings"

	"tnfirefly-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// RawTable is the minimal candidate fact an adapter hands the
// classifier: the header row, the nearest preceding section heading,
// and the data rows still as raw cell text.
type RawTable struct {
	SourceOrigin string
	URL          string
	Context      string
	Headers      []string
	Rows         [][]string
}

type TableKind string

const (
	TableRaceRating   TableKind = "race_rating_table"
	TablePrimaryPoll  TableKind = "primary_poll_table"
	TableGeneralPoll  TableKind = "general_poll_table"
	TableUnclassified TableKind = "unclassified"
)

// Classifier decides what kind of record a structured table holds.
type Classifier struct {
	config Config
}

func NewClassifier(config Config) Classifier {
	return Classifier{config: config}
}

var versusRegex = regexp.MustCompile(`(?i)\b[a-z]+\s+vs\.?\s+[a-z]+`)
var partySuffixRegex = regexp.MustCompile(`(?i)\((r|d|i)\)\s*$`)

// Classify applies the decision policy in order, first match wins.
// Race-rating tables are excluded before anything else because they
// share vocabulary ("source", numeric columns) with polling tables;
// the primary/general call is biased toward primary, the common case
// for this race when signals are absent.
func (c Classifier) Classify(t RawTable) TableKind {
	if c.isRaceRating(t.Headers) {
		return TableRaceRating
	}

	if !headersHaveAny(t.Headers, "poll", "date", "sample", "margin") {
		return TableUnclassified
	}

	context := strings.ToLower(t.Context)
	joinedHeaders := strings.ToLower(strings.Join(t.Headers, " | "))

	if strings.Contains(context, "general") || strings.Contains(joinedHeaders, "general") {
		return TableGeneralPoll
	}
	if versusRegex.MatchString(context) || versusRegex.MatchString(joinedHeaders) {
		return TableGeneralPoll
	}
	for _, h := range t.Headers {
		if partySuffixRegex.MatchString(h) {
			return TableGeneralPoll
		}
	}

	if strings.Contains(context, "primary") || strings.Contains(joinedHeaders, "primary") {
		return TablePrimaryPoll
	}
	if c.singlePartyRoster(t.Headers) {
		return TablePrimaryPoll
	}
	if c.anyCandidateInHeaders(t.Headers) {
		return TablePrimaryPoll
	}

	return TableUnclassified
}

func (c Classifier) isRaceRating(headers []string) bool {
	sourceLike := headersHaveAny(headers, "source", "forecaster")
	rankingLike := headersHaveAny(headers, "ranking", "rating", "outlook", "call")
	if sourceLike && rankingLike {
		return true
	}

	for _, h := range headers {
		if c.isForecaster(h) {
			return true
		}
	}
	return false
}

func (c Classifier) isForecaster(cell string) bool {
	lower := strings.ToLower(cell)
	for _, forecaster := range c.config.Forecasters {
		if strings.Contains(lower, forecaster) {
			return true
		}
	}
	return false
}

func (c Classifier) singlePartyRoster(headers []string) bool {
	party := ""
	matched := 0
	for _, h := range headers {
		cand, ok := c.MatchCandidate(h)
		if !ok {
			continue
		}
		matched++
		if party == "" {
			party = cand.Party
		} else if party != cand.Party {
			return false
		}
	}
	return matched > 0
}

func (c Classifier) anyCandidateInHeaders(headers []string) bool {
	for _, h := range headers {
		if _, ok := c.MatchCandidate(h); ok {
			return true
		}
	}
	return false
}

// candidate columns get misspelled often enough ("Blackbrun") that
// substring matching alone loses rows, so near-misses fall back to
// Jaro-Winkler against the roster
const fuzzyMatchThreshold = 0.88

// MatchCandidate resolves a header/cell to a tracked candidate, by
// pattern substring first, then fuzzily.
func (c Classifier) MatchCandidate(cell string) (Candidate, bool) {
	normalized := strings.ToLower(strings.TrimSpace(partySuffixRegex.ReplaceAllString(cell, "")))
	if normalized == "" {
		return Candidate{}, false
	}

	for _, cand := range c.config.Candidates {
		for _, pattern := range cand.Patterns {
			if strings.Contains(normalized, pattern) {
				return cand, true
			}
		}
	}

	compact := textutil.NormalizeName(normalized)
	for _, cand := range c.config.Candidates {
		similarity := matchr.JaroWinkler(compact, strings.ToLower(cand.Name), false)
		if similarity > fuzzyMatchThreshold {
			return cand, true
		}
	}
	return Candidate{}, false
}

func headersHaveAny(headers []string, substrings ...string) bool {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, s := range substrings {
			if strings.Contains(lower, s) {
				return true
			}
		}
	}
	return false
}
