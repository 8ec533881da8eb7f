package polls

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const toWinPage = `<html><body>
<h2>Race Ratings</h2>
<table>
<tr><th>Source</th><th>Ranking</th><th>Date</th></tr>
<tr><td>Cook Political Report</td><td>Solid R</td><td>July 1, 2026</td></tr>
<tr><td>Sabato's Crystal Ball</td><td>Safe R</td><td>June 15, 2026</td></tr>
</table>

<h2>Republican Primary Polls</h2>
<table>
<tr><th>Poll</th><th>Date</th><th>Sample</th><th>Blackburn</th><th>Rose</th><th>Undecided</th><th>Margin of Error</th></tr>
<tr><td>Emerson College</td><td>July 10-12, 2026</td><td>850 LV</td><td>46%</td><td>13%</td><td>25%</td><td>±3.3%</td></tr>
<tr><td></td><td>July 1, 2026</td><td>800 LV</td><td>40%</td><td>10%</td><td>30%</td><td>±3%</td></tr>
<tr><td>Targoz Market Research</td><td>TBD</td><td>—</td><td>—</td><td>—</td><td>—</td><td>—</td></tr>
</table>

<h2>General Election Polling</h2>
<table>
<tr><th>Poll</th><th>Date</th><th>Blackburn (R)</th><th>Green (D)</th><th>Other</th><th>Undecided</th></tr>
<tr><td>Vanderbilt University</td><td>May 1-5, 2026</td><td>55%</td><td>35%</td><td>3%</td><td>7%</td></tr>
</table>

<h2>Site Navigation</h2>
<table>
<tr><th>Page</th><th>Link</th></tr>
<tr><td>Home</td><td>/</td></tr>
</table>
</body></html>`

func TestExtractTables(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(toWinPage))
	require.NoError(t, err)

	tw := NewToWin(nil, DefaultConfig())
	extract := tw.ExtractTables(context.Background(), doc, "https://www.270towin.com/2026-governor-polls/tennessee")

	require.Len(t, extract.RaceRatings, 2)
	require.Equal(t, "Cook Political Report", extract.RaceRatings[0].Forecaster)
	require.Equal(t, "Solid R", extract.RaceRatings[0].Rating)
	require.Equal(t, "2026-07-01", extract.RaceRatings[0].AsOf)
	require.Equal(t, "Sabato's Crystal Ball", extract.RaceRatings[1].Forecaster)

	require.Len(t, extract.Polls, 1)
	poll := extract.Polls[0]
	require.Equal(t, "Emerson College", poll.Pollster)
	require.Equal(t, KindPrimary, poll.Kind)
	require.Equal(t, "2026-07-10", poll.StartDate)
	require.Equal(t, "2026-07-12", poll.EndDate)
	require.Equal(t, "850 LV", poll.SampleSize)
	require.Equal(t, "±3.3%", poll.MarginOfError)
	require.Equal(t, "emerson-college-2026-07-10-primary", poll.ID)
	require.Equal(t, []PollResult{
		{Candidate: "Blackburn", Party: "rep", Percent: 46},
		{Candidate: "Rose", Party: "rep", Percent: 13},
		{Candidate: "Undecided", Percent: 25},
	}, poll.Results)

	// one row with no pollster, one with no parseable shares
	require.Equal(t, 2, extract.SoftFailures)

	require.Len(t, extract.GeneralPolls, 1)
	general := extract.GeneralPolls[0]
	require.Equal(t, KindGeneral, general.Kind)
	require.Equal(t, "Vanderbilt University", general.Pollster)
	require.Equal(t, "Blackburn (R) vs Green (D)", general.Matchup)
	require.Equal(t, []PollResult{
		{Candidate: "Blackburn", Party: "rep", Percent: 55},
		{Candidate: "Green", Party: "dem", Percent: 35},
		{Candidate: "Other", Percent: 3},
		{Candidate: "Undecided", Percent: 7},
	}, general.Results)
}

func TestPollResultsKeepColumnOrder(t *testing.T) {
	tw := NewToWin(nil, DefaultConfig())
	table := RawTable{
		Headers: []string{"Pollster", "Other", "Blackburn", "Undecided"},
		Rows:    [][]string{{"Emerson College", "3%", "46%", "25%"}},
	}
	records, soft := tw.pollsFromTable(context.Background(), table, KindPrimary)
	require.Zero(t, soft)
	require.Len(t, records, 1)
	require.Equal(t, []PollResult{
		{Candidate: "Other", Percent: 3},
		{Candidate: "Blackburn", Party: "rep", Percent: 46},
		{Candidate: "Undecided", Percent: 25},
	}, records[0].Results)
}

func TestRatingsFromColumnarTable(t *testing.T) {
	tw := NewToWin(nil, DefaultConfig())
	ratings := tw.ratingsFromColumnarTable(RawTable{
		URL:     "https://example.com",
		Headers: []string{"Cook Political Report", "Inside Elections", "Notes"},
		Rows:    [][]string{{"Solid R", "Solid Republican", "n/a"}},
	})
	require.Len(t, ratings, 2)
	require.Equal(t, "Cook Political Report", ratings[0].Forecaster)
	require.Equal(t, "Solid Republican", ratings[1].Rating)
}

func TestMapColumns(t *testing.T) {
	tw := NewToWin(nil, DefaultConfig())
	cm := tw.mapColumns([]string{"Pollster", "Fieldwork", "Blackbrun", "Und.", "MoE"})
	require.Equal(t, 0, cm.pollster)
	require.Equal(t, 1, cm.date)
	require.Equal(t, "Blackburn", cm.candidates[2].Name)
	require.Equal(t, 3, cm.undecided)
	require.Equal(t, 4, cm.margin)
}
