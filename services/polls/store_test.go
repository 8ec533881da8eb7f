package polls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "polls.json"))
	file := store.Load()
	require.NotNil(t, file)
	require.Empty(t, file.Polls)
	require.NotNil(t, file.Aggregators)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polls.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	file := NewStore(path).Load()
	require.NotNil(t, file)
	require.Empty(t, file.Polls)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "polls.json"))

	file := NewFile()
	record := PollRecord{
		Pollster:  "Emerson College",
		Kind:      KindPrimary,
		StartDate: "2026-01-10",
		Results:   []PollResult{{Candidate: "Blackburn", Party: "rep", Percent: 46}},
	}
	record.ID = PollID(record.Pollster, record.StartDate, record.Kind)
	file.Polls = []PollRecord{record}
	file.Analysis = "one line"

	require.NoError(t, store.Save(file))

	loaded := store.Load()
	require.Equal(t, file.Polls, loaded.Polls)
	require.Equal(t, "one line", loaded.Analysis)

	// no temp droppings left next to the file
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
