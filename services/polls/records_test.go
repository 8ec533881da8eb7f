package polls

import (
	"testing"

	"tnfirefly-backend/lib/mergeutil"
	"tnfirefly-backend/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPollIDNormalizesPunctuation(t *testing.T) {
	require.Equal(t,
		"beacon-center-tennsight-2026-01-05-primary",
		PollID("Beacon Center / TennSight", "2026-01-05", KindPrimary))
	// same identity however the source punctuates the pollster
	require.Equal(t,
		PollID("Emerson College", "2026-01-10", KindPrimary),
		PollID("  emerson   college ", "2026-01-10", KindPrimary))
}

func TestSupportAndUndecided(t *testing.T) {
	record := PollRecord{Results: []PollResult{
		{Candidate: "Blackburn", Percent: 46},
		{Candidate: "undecided ", Percent: 25},
	}}

	support, ok := record.Support("BLACKBURN")
	require.True(t, ok)
	require.Equal(t, 46.0, support)

	undecided, ok := record.Undecided()
	require.True(t, ok)
	require.Equal(t, 25.0, undecided)

	_, ok = record.Support("Rose")
	require.False(t, ok)
}

func TestNewFileHasNoNilCollections(t *testing.T) {
	file := NewFile()
	require.NotNil(t, file.Polls)
	require.NotNil(t, file.GeneralPolls)
	require.NotNil(t, file.RaceRatings)
	require.NotNil(t, file.ApprovalRatings)
	require.NotNil(t, file.IssuePolling)
	require.NotNil(t, file.PoliticalEnvironment)
	require.NotNil(t, file.Aggregators)
}

func TestMergeManyRandomRecordsIdempotent(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "polls"})
	defer cleanup()

	var batch []PollRecord
	for i := 0; i < 50; i++ {
		record := PollRecord{
			Pollster:  testutil.RandomPollster(t),
			Kind:      KindPrimary,
			StartDate: testutil.RandomDate(t),
			Results: []PollResult{
				{Candidate: "Blackburn", Party: "rep", Percent: testutil.RandomPercent(t)},
			},
		}
		record.ID = PollID(record.Pollster, record.StartDate, record.Kind)
		batch = append(batch, record)
	}

	once := mergeutil.UpdateByID(nil, batch)
	twice := mergeutil.UpdateByID(once, batch)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("re-merging the same batch changed the file:\n%s", diff)
	}

	for i := 1; i < len(twice); i++ {
		require.GreaterOrEqual(t, twice[i-1].StartDate, twice[i].StartDate)
	}
}
