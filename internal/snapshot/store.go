// Package snapshot owns the lifecycle of the in-memory dataset: load,
// normalize, and atomically publish. Readers always see a complete snapshot;
// a reload never mutates data in place.
package snapshot

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/aevon-lab/rfm-insight/internal/source"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Snapshot is one immutable version of the normalized dataset. In-flight
// readers keep the version they started with across reloads.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Columns  []string
	Records  rfm.Dataset
}

// Store publishes dataset snapshots with copy-on-write swaps.
type Store struct {
	repo    source.Repository
	nowFn   func() time.Time
	current atomic.Pointer[Snapshot]
	reloads singleflight.Group // Dedupe concurrent reloads
}

// NewStore creates a store seeded with an empty snapshot, so Current is
// usable before the first reload completes.
func NewStore(repo source.Repository) *Store {
	s := &Store{
		repo: repo,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
	s.current.Store(s.emptySnapshot())
	return s
}

// Current returns the active snapshot. Never nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload fetches the raw table, normalizes it and swaps in a fresh snapshot.
// Concurrent calls are deduped; every caller observes the same result. A
// source failure is recoverable: it logs and publishes an empty snapshot
// instead of returning an error, so downstream always has data to read.
func (s *Store) Reload(ctx context.Context) *Snapshot {
	v, _, _ := s.reloads.Do("reload", func() (interface{}, error) {
		table, err := s.repo.Load(ctx)
		if err != nil {
			slog.Error("[Snapshot] Source load failed, publishing empty dataset", "error", err)
			snap := s.emptySnapshot()
			s.current.Store(snap)
			return snap, nil
		}

		snap := &Snapshot{
			ID:       uuid.New(),
			LoadedAt: s.nowFn(),
			Columns:  table.Columns,
			Records:  rfm.Normalize(table.Records),
		}
		s.current.Store(snap)
		slog.Info("[Snapshot] Dataset loaded",
			"snapshot_id", snap.ID,
			"rows", len(snap.Records),
			"columns", table.Columns,
		)
		return snap, nil
	})
	return v.(*Snapshot)
}

func (s *Store) emptySnapshot() *Snapshot {
	return &Snapshot{
		ID:       uuid.New(),
		LoadedAt: s.nowFn(),
		Records:  rfm.Dataset{},
	}
}
