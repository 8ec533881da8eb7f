package hub

import (
	"context"
	"path/filepath"
	"testing"

	"tnfirefly-backend/services/endorsements"
	"tnfirefly-backend/services/finance"
	"tnfirefly-backend/services/news"
	"tnfirefly-backend/services/polls"

	"github.com/stretchr/testify/require"
)

func hubService(t *testing.T) Service {
	t.Helper()
	dir := t.TempDir()
	return NewService(
		polls.NewStore(filepath.Join(dir, "polls.json")),
		news.NewStore(filepath.Join(dir, "news.json")),
		finance.NewStore(filepath.Join(dir, "finance.json")),
		endorsements.NewStore(filepath.Join(dir, "endorsements.json")),
		NewStore(filepath.Join(dir, "hub-summary.json")),
	)
}

func TestBuildFromEmptyStores(t *testing.T) {
	s := hubService(t)
	summary, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.Polls.PollCount)
	require.Nil(t, summary.Polls.Latest)
	require.Empty(t, summary.News.Latest)
	require.NotEmpty(t, summary.GeneratedAt)

	// written to disk
	require.Equal(t, summary.GeneratedAt, s.out.Load().GeneratedAt)
}

func TestBuildComposesSections(t *testing.T) {
	s := hubService(t)

	pollsFile := polls.NewFile()
	pollsFile.LastUpdated = "2026-01-20"
	pollsFile.Polls = []polls.PollRecord{{
		Pollster:  "Emerson College",
		Kind:      polls.KindPrimary,
		StartDate: "2026-01-10",
		Results: []polls.PollResult{
			{Candidate: "Blackburn", Party: "rep", Percent: 46},
			{Candidate: "Rose", Party: "rep", Percent: 13},
			{Candidate: "Undecided", Percent: 25},
		},
	}}
	pollsFile.RaceRatings = []polls.RaceRating{
		{Forecaster: "Cook Political Report", Rating: "Solid R", AsOf: "2026-07-01"},
	}
	pollsFile.Trendline.Description = "Blackburn +6.0 pts"
	pollsFile.Analysis = "Tracking 1 primary poll."
	require.NoError(t, s.polls.Save(pollsFile))

	newsFile := news.NewFile()
	for _, title := range []string{"Story one", "Story two", "Story three", "Story four"} {
		newsFile.Articles = append(newsFile.Articles, news.Article{
			Title: title, Source: "Tennessee Lookout", Published: "2026-01-15",
		})
	}
	require.NoError(t, s.news.Save(newsFile))

	financeFile := finance.NewFile()
	financeFile.Candidates = []finance.CandidateFinance{
		{Candidate: "Blackburn", Raised: 5000000},
		{Candidate: "Rose", Raised: 800000},
	}
	require.NoError(t, s.finance.Save(financeFile))

	endorsementsFile := endorsements.NewFile()
	endorsementsFile.Endorsements = []endorsements.Endorsement{
		{Endorser: "Donald Trump", Candidate: "Blackburn"},
		{Endorser: "Bill Hagerty", Candidate: "Blackburn"},
	}
	require.NoError(t, s.endorsements.Save(endorsementsFile))

	summary, err := s.Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Polls.PollCount)
	require.NotNil(t, summary.Polls.Latest)
	require.Equal(t, "Blackburn", summary.Polls.Latest.Leader)
	require.Equal(t, 46.0, summary.Polls.Latest.Support)
	require.Equal(t, "Blackburn +6.0 pts", summary.Polls.TrendDescription)
	require.Equal(t, pollsFile.RaceRatings, summary.Polls.RaceRatings)

	require.Equal(t, 4, summary.News.ArticleCount)
	require.Len(t, summary.News.Latest, 3)
	require.Equal(t, "Story one", summary.News.Latest[0].Title)

	require.Equal(t, "Blackburn", summary.Finance.Leader)
	require.Equal(t, 5800000.0, summary.Finance.TotalRaised)

	require.Equal(t, 2, summary.Endorsements.Count)
	require.Equal(t, []string{"Bill Hagerty", "Donald Trump"}, summary.Endorsements.Latest)
	require.Equal(t, map[string]int{"Blackburn": 2}, summary.Endorsements.ByCandidate)
}
