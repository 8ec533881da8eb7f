package polls

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyManualPrecedence(t *testing.T) {
	file := NewFile()
	scraped := PollRecord{
		Pollster:  "Emerson College",
		Kind:      KindPrimary,
		StartDate: "2026-01-10",
		Results:   []PollResult{{Candidate: "Blackburn", Party: "rep", Percent: 44}},
	}
	scraped.ID = PollID(scraped.Pollster, scraped.StartDate, scraped.Kind)
	file.Polls = []PollRecord{scraped}

	corrected := scraped
	corrected.Results = []PollResult{{Candidate: "Blackburn", Party: "rep", Percent: 46}}

	ApplyManual(file, Manual{Polls: []PollRecord{corrected}})

	require.Len(t, file.Polls, 1)
	require.Equal(t, 46.0, file.Polls[0].Results[0].Percent)
	require.NotEmpty(t, file.LastMerged)
	// merged timestamp is a full instant, the public stamp is a date
	require.Len(t, file.LastUpdated, len("2006-01-02"))
}

func TestApplyManualSourcesAppendOnly(t *testing.T) {
	file := NewFile()
	file.PollingSources = []Source{{Name: "Vanderbilt University", Frequency: "biannual"}}

	ApplyManual(file, Manual{Sources: []Source{
		{Name: "vanderbilt university", Frequency: "annual"},
		{Name: "MTSU Poll"},
	}})

	require.Len(t, file.PollingSources, 2)
	// existing entry untouched, name compared case-insensitively
	require.Equal(t, "biannual", file.PollingSources[0].Frequency)
	require.Equal(t, "MTSU Poll", file.PollingSources[1].Name)
}

func TestApplyManualTrendline(t *testing.T) {
	file := NewFile()
	file.Trendline = Trendline{
		Description: "generated description",
		Data: []TrendPoint{
			{Date: "2025-12-01", Pollster: "Pollster B", Support: map[string]float64{"Blackburn": 46}},
		},
	}

	ApplyManual(file, Manual{Trendline: Trendline{
		Description: "hand-written description",
		Data: []TrendPoint{
			// duplicate of an existing point, must not double up
			{Date: "2025-12-01", Pollster: "Pollster B", Support: map[string]float64{"Blackburn": 40}},
			{Date: "2025-09-01", Pollster: "Pollster A", Support: map[string]float64{"Blackburn": 40}},
		},
	}})

	require.Len(t, file.Trendline.Data, 2)
	require.Equal(t, "2025-09-01", file.Trendline.Data[0].Date)
	require.Equal(t, "2025-12-01", file.Trendline.Data[1].Date)
	// the scraped point survives the duplicate
	require.Equal(t, 46.0, file.Trendline.Data[1].Support["Blackburn"])
	require.Equal(t, "hand-written description", file.Trendline.Description)
}

func TestApplyManualIssueTopics(t *testing.T) {
	file := NewFile()
	file.IssuePolling = map[string][]IssueRecord{
		"school-choice": {{Topic: "school-choice", Value: 58, PollLabel: "January 2026", SourceOrigin: "Beacon Center / TennSight"}},
	}

	ApplyManual(file, Manual{IssuePolling: map[string][]IssueRecord{
		"school-choice": {
			// same secondary key, skipped
			{Topic: "school-choice", Value: 50, PollLabel: "January 2026", SourceOrigin: "Beacon Center / TennSight"},
			{Topic: "school-choice", Value: 61, PollLabel: "Statewide Survey", SourceOrigin: "Vanderbilt University"},
		},
		"marijuana": {
			{Topic: "marijuana", Value: 63, PollLabel: "Statewide Survey", SourceOrigin: "Vanderbilt University"},
		},
	}})

	require.Len(t, file.IssuePolling["school-choice"], 2)
	require.Equal(t, 58.0, file.IssuePolling["school-choice"][0].Value)
	require.Equal(t, 61.0, file.IssuePolling["school-choice"][1].Value)
	require.Len(t, file.IssuePolling["marijuana"], 1)
}

func TestApplyManualAnalysisOverride(t *testing.T) {
	file := NewFile()
	file.Analysis = "generated"

	ApplyManual(file, Manual{})
	require.Equal(t, "generated", file.Analysis)

	ApplyManual(file, Manual{Analysis: "editorial take"})
	require.Equal(t, "editorial take", file.Analysis)
}

func TestMergeRebuildsPublishedFromScraped(t *testing.T) {
	dir := t.TempDir()
	scraped := NewStore(filepath.Join(dir, "scraped", "polls.json"))
	published := NewStore(filepath.Join(dir, "polls.json"))
	manualPath := filepath.Join(dir, "manual-overrides.json")

	record := PollRecord{
		Pollster:  "Emerson College",
		Kind:      KindPrimary,
		StartDate: "2026-01-10",
		Results:   []PollResult{{Candidate: "Blackburn", Party: "rep", Percent: 46}},
	}
	record.ID = PollID(record.Pollster, record.StartDate, record.Kind)
	scrapedFile := NewFile()
	scrapedFile.Polls = []PollRecord{record}
	require.NoError(t, scraped.Save(scrapedFile))

	extra := record
	extra.Pollster = "MTSU Poll"
	extra.ID = PollID(extra.Pollster, extra.StartDate, extra.Kind)
	require.NoError(t, os.WriteFile(manualPath, []byte(`{
		"polls": {"polls": [{
			"id": "`+extra.ID+`",
			"pollster": "MTSU Poll",
			"kind": "primary",
			"startDate": "2026-01-10"
		}]}
	}`), 0o644))

	service := Service{scraped: scraped, published: published, manualPath: manualPath}
	merged, err := service.Merge(context.Background())
	require.NoError(t, err)
	require.Len(t, merged.Polls, 2)

	// withdrawing the override removes it on the next merge, and the
	// scraped file never picked it up
	require.NoError(t, os.WriteFile(manualPath, []byte(`{"polls": {}}`), 0o644))
	merged, err = service.Merge(context.Background())
	require.NoError(t, err)
	require.Len(t, merged.Polls, 1)
	require.Equal(t, record.ID, merged.Polls[0].ID)
	require.Len(t, scraped.Load().Polls, 1)
	require.Len(t, published.Load().Polls, 1)
}

func TestReadManualPollsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"polls": {"analysis": "editorial take", "sources": [{"name": "MTSU Poll"}]},
		"news": {"articles": []}
	}`), 0o644))

	manual, err := ReadManual(path)
	require.NoError(t, err)
	require.Equal(t, "editorial take", manual.Analysis)
	require.Len(t, manual.Sources, 1)
}

func TestReadManualMissingFile(t *testing.T) {
	manual, err := ReadManual(filepath.Join(t.TempDir(), "manual.json"))
	require.NoError(t, err)
	require.Empty(t, manual.Polls)
}

func TestReadManualMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := ReadManual(path)
	require.Error(t, err)
}
