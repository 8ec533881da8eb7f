package polls

import (
	"fmt"
	"strings"

	"tnfirefly-backend/lib/textutil"
)

// BuildAnalysis renders the standing one-paragraph summary of the
// race. Fragments come in a fixed order and any fragment whose
// underlying data is missing is simply left out, so the paragraph
// degrades gracefully as sources come and go.
func BuildAnalysis(file *File, config Config) string {
	var fragments []string

	if frag := countsFragment(file, config); frag != "" {
		fragments = append(fragments, frag)
	}
	if frag := undecidedFragment(file); frag != "" {
		fragments = append(fragments, frag)
	}
	if frag := ratingsFragment(file.RaceRatings); frag != "" {
		fragments = append(fragments, frag)
	}
	if frag := approvalFragment(file.ApprovalRatings); frag != "" {
		fragments = append(fragments, frag)
	}

	if len(fragments) == 0 {
		return "No polling data available yet."
	}
	return strings.Join(fragments, " ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func countsFragment(file *File, config Config) string {
	if len(file.Polls) == 0 && len(file.GeneralPolls) == 0 {
		return ""
	}
	frag := fmt.Sprintf("Tracking %s from %s and %s.",
		plural(len(file.Polls), "primary poll"),
		plural(distinctPollsters(file.Polls), "pollster"),
		plural(len(file.GeneralPolls), "general election poll"))

	if standing := standingFragment(latestPrimary(file), config); standing != "" {
		frag += " " + standing
	}
	return frag
}

func distinctPollsters(records []PollRecord) int {
	seen := map[string]bool{}
	for _, r := range records {
		seen[textutil.NormalizeName(r.Pollster)] = true
	}
	return len(seen)
}

// latestPrimary relies on the polls slice being kept newest-first;
// undated polls sort last and are skipped.
func latestPrimary(file *File) *PollRecord {
	for i := range file.Polls {
		if file.Polls[i].StartDate != "" {
			return &file.Polls[i]
		}
	}
	return nil
}

func standingFragment(latest *PollRecord, config Config) string {
	if latest == nil {
		return ""
	}
	lead := config.LeadCandidate()

	leadShare, ok := latest.Support(lead.Name)
	if !ok {
		return ""
	}

	rival := ""
	rivalShare := 0.0
	for _, result := range latest.Results {
		if result.Candidate == lead.Name ||
			result.Candidate == "Undecided" || result.Candidate == "Other" {
			continue
		}
		if rival == "" || result.Percent > rivalShare {
			rival = result.Candidate
			rivalShare = result.Percent
		}
	}
	if rival == "" {
		return fmt.Sprintf("%s stands at %.0f%% in the latest primary poll (%s).",
			lead.Name, leadShare, latest.Pollster)
	}

	if leadShare >= rivalShare {
		return fmt.Sprintf("%s leads %s %.0f%% to %.0f%% in the latest primary poll (%s).",
			lead.Name, rival, leadShare, rivalShare, latest.Pollster)
	}
	return fmt.Sprintf("%s trails %s %.0f%% to %.0f%% in the latest primary poll (%s).",
		lead.Name, rival, leadShare, rivalShare, latest.Pollster)
}

const largeUndecidedShare = 20.0

func undecidedFragment(file *File) string {
	latest := latestPrimary(file)
	if latest == nil {
		return ""
	}
	undecided, ok := latest.Undecided()
	if !ok || undecided <= largeUndecidedShare {
		return ""
	}
	return fmt.Sprintf("Undecided voters remain a large share at %.0f%%.", undecided)
}

func ratingsFragment(ratings []RaceRating) string {
	if len(ratings) == 0 {
		return ""
	}

	unanimous := true
	for _, r := range ratings[1:] {
		if r.Rating != ratings[0].Rating {
			unanimous = false
			break
		}
	}
	if unanimous {
		return fmt.Sprintf("Forecasters unanimously rate the race %s.", ratings[0].Rating)
	}

	var parts []string
	for _, r := range ratings {
		parts = append(parts, fmt.Sprintf("%s (%s)", r.Rating, r.Forecaster))
	}
	return fmt.Sprintf("Forecaster ratings: %s.", strings.Join(parts, ", "))
}

func approvalFragment(approvals map[string][]ApprovalRecord) string {
	records := approvals["Governor Lee"]
	if len(records) == 0 {
		return ""
	}
	// grouped records append in scrape order, the last is the newest
	latest := records[len(records)-1]
	return fmt.Sprintf("Governor Lee's job approval sits at %.0f%% (%s).",
		latest.Approve, latest.PollLabel)
}
