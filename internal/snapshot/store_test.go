package snapshot

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/aevon-lab/rfm-insight/internal/source"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	mu    sync.Mutex
	table source.RawTable
	err   error
	calls int
}

func (r *stubRepository) Load(_ context.Context) (source.RawTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.table, r.err
}

func TestStore_CurrentBeforeReloadIsEmpty(t *testing.T) {
	store := NewStore(&stubRepository{})

	snap := store.Current()
	require.NotNil(t, snap)
	require.Empty(t, snap.Records)
}

func TestStore_ReloadSwapsSnapshot(t *testing.T) {
	repo := &stubRepository{table: source.RawTable{
		Columns: []string{source.ColRecency, source.ColFrequency, source.ColMonetary},
		Records: []rfm.RawRecord{
			{Recency: "10", Frequency: "2", Monetary: "100", ValueSegment: "High"},
		},
	}}
	store := NewStore(repo)

	before := store.Current()
	snap := store.Reload(context.Background())

	require.NotEqual(t, before.ID, snap.ID)
	require.Len(t, snap.Records, 1)
	require.Equal(t, 10.0, snap.Records[0].Recency)
	require.Same(t, snap, store.Current())

	// The previous snapshot is untouched; in-flight readers keep it.
	require.Empty(t, before.Records)
}

func TestStore_SourceFailurePublishesEmptySnapshot(t *testing.T) {
	repo := &stubRepository{table: source.RawTable{
		Records: []rfm.RawRecord{{Recency: "10", Frequency: "1", Monetary: "50"}},
	}}
	store := NewStore(repo)

	loaded := store.Reload(context.Background())
	require.Len(t, loaded.Records, 1)

	repo.mu.Lock()
	repo.err = fmt.Errorf("file vanished")
	repo.mu.Unlock()

	snap := store.Reload(context.Background())
	require.Empty(t, snap.Records)
	require.NotEqual(t, loaded.ID, snap.ID)
	require.Same(t, snap, store.Current())
}

func TestStore_ConcurrentReloadsAllSucceed(t *testing.T) {
	repo := &stubRepository{table: source.RawTable{
		Records: []rfm.RawRecord{{Recency: "1", Frequency: "1", Monetary: "1"}},
	}}
	store := NewStore(repo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := store.Reload(context.Background())
			require.NotNil(t, snap)
			require.Len(t, snap.Records, 1)
		}()
	}
	wg.Wait()
}
