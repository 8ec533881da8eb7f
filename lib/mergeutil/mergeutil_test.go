package mergeutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID    string
	Date  string
	Value int
}

func (e entry) MergeKey() string { return e.ID }
func (e entry) SortDate() string { return e.Date }

func TestUpdateByIDReplacesAndAppends(t *testing.T) {
	dst := []entry{
		{ID: "a", Date: "2025-09-01", Value: 1},
		{ID: "b", Date: "2025-10-01", Value: 2},
	}
	additions := []entry{
		{ID: "a", Date: "2025-09-01", Value: 99},
		{ID: "c", Date: "2025-12-01", Value: 3},
	}

	out := UpdateByID(dst, additions)
	require.Len(t, out, 3)
	require.Equal(t, "c", out[0].ID)
	require.Equal(t, "b", out[1].ID)
	require.Equal(t, "a", out[2].ID)
	require.Equal(t, 99, out[2].Value)
}

func TestUpdateByIDIdempotent(t *testing.T) {
	dst := []entry{
		{ID: "a", Date: "2025-09-01", Value: 1},
	}
	additions := []entry{
		{ID: "a", Date: "2025-09-02", Value: 2},
		{ID: "b", Date: "", Value: 3},
	}

	once := UpdateByID(dst, additions)
	twice := UpdateByID(once, additions)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("merge is not idempotent:\n%s", diff)
	}
}

func TestSortInvariantEmptyDatesLast(t *testing.T) {
	dst := []entry{
		{ID: "u1", Date: "", Value: 1},
		{ID: "a", Date: "2025-01-01"},
		{ID: "u2", Date: "", Value: 2},
		{ID: "b", Date: "2025-06-01"},
	}
	out := UpdateByID(dst, nil)

	require.Equal(t, "b", out[0].ID)
	require.Equal(t, "a", out[1].ID)
	// relative order among undated entries is preserved
	require.Equal(t, "u1", out[2].ID)
	require.Equal(t, "u2", out[3].ID)
}

func TestOverlayManualWins(t *testing.T) {
	scraped := []entry{
		{ID: "a", Date: "2025-09-01", Value: 1},
		{ID: "b", Date: "2025-10-01", Value: 2},
	}
	manual := []entry{
		{ID: "a", Date: "2025-03-01", Value: 42},
		{ID: "m", Date: "2025-11-01", Value: 7},
	}

	out := OverlayByID(scraped, manual)
	require.Len(t, out, 3)

	byID := map[string]entry{}
	for _, e := range out {
		byID[e.ID] = e
	}
	// manual replaces scraped wholesale, even though it is older
	require.Equal(t, entry{ID: "a", Date: "2025-03-01", Value: 42}, byID["a"])
	require.Equal(t, 7, byID["m"].Value)
}

func TestOverlayPrunesStaleKeys(t *testing.T) {
	scraped := []entry{{ID: "fresh", Date: "2025-09-01"}}
	manual := []entry{{ID: "manual", Date: "2025-01-01"}}

	out := OverlayByID(scraped, manual)
	for _, e := range out {
		require.NotEqual(t, "stale", e.ID)
	}
	require.Len(t, out, 2)
}

func TestOverlayIdempotent(t *testing.T) {
	scraped := []entry{{ID: "a", Date: "2025-09-01", Value: 1}}
	manual := []entry{{ID: "a", Date: "2025-02-01", Value: 5}}

	once := OverlayByID(scraped, manual)
	twice := OverlayByID(once, manual)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("overlay is not idempotent:\n%s", diff)
	}
}

type issueEntry struct {
	Source string
	Poll   string
	Value  float64
}

func issueKey(e issueEntry) string { return e.Source + "-" + e.Poll }

func TestMergeGrouped(t *testing.T) {
	scraped := map[string][]issueEntry{
		"school-choice": {
			{Source: "Beacon", Poll: "Jan 2026", Value: 61},
		},
	}
	manual := map[string][]issueEntry{
		// duplicate secondary key, must not double up
		"school-choice": {
			{Source: "Beacon", Poll: "Jan 2026", Value: 99},
			{Source: "Vanderbilt", Poll: "Fall 2025", Value: 55},
		},
		// brand-new topic gets created
		"medicaid": {
			{Source: "Vanderbilt", Poll: "Fall 2025", Value: 48},
		},
	}

	merged := MergeGrouped(scraped, manual, issueKey)
	require.Len(t, merged, 2)
	require.Len(t, merged["school-choice"], 2)
	require.Equal(t, 61.0, merged["school-choice"][0].Value)
	require.Len(t, merged["medicaid"], 1)
}

type source struct{ Name string }

func TestAppendByName(t *testing.T) {
	dst := []source{{Name: "Beacon Center"}}
	additions := []source{{Name: "beacon center"}, {Name: "MTSU Poll"}}

	out := AppendByName(dst, additions, func(s source) string { return s.Name })
	require.Len(t, out, 2)
	require.Equal(t, "Beacon Center", out[0].Name)
	require.Equal(t, "MTSU Poll", out[1].Name)
}
