package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 20, 6, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Run{
		Step: "polls", StartedAt: base, Duration: 4 * time.Second, Success: true,
	}))
	require.NoError(t, store.Record(ctx, Run{
		Step: "finance", StartedAt: base.Add(time.Minute), Duration: 30 * time.Second,
		Success: false, Detail: "no committee pages could be read",
	}))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "finance", runs[0].Step)
	require.False(t, runs[0].Success)
	require.Equal(t, "no committee pages could be read", runs[0].Detail)
	require.Equal(t, "polls", runs[1].Step)
	require.Equal(t, 4*time.Second, runs[1].Duration)
	require.True(t, runs[1].StartedAt.Equal(base))
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 20, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, Run{
			Step: "news", StartedAt: base.Add(time.Duration(i) * time.Hour), Success: true,
		}))
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

func TestLastSuccess(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, ok, err := store.LastSuccess(ctx, "polls")
	require.NoError(t, err)
	require.False(t, ok)

	base := time.Date(2026, 1, 20, 6, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Run{Step: "polls", StartedAt: base, Success: true}))
	require.NoError(t, store.Record(ctx, Run{Step: "polls", StartedAt: base.Add(time.Hour), Success: false}))

	at, ok, err := store.LastSuccess(ctx, "polls")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, at.Equal(base))
}
