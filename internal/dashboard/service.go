// Package dashboard is the query layer: it resolves filter parameters
// against the current snapshot and produces render-ready metrics, counts,
// records and chart payloads.
package dashboard

import (
	"context"
	"time"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/aevon-lab/rfm-insight/internal/snapshot"
)

// Service implements the dashboard query API. Each call is a pure function
// of (current snapshot, supplied parameters); nothing is cached across
// filter changes.
type Service struct {
	store    *snapshot.Store
	fallback rfm.Fallback
}

// NewService creates a dashboard service reading from the given store.
func NewService(store *snapshot.Store, fallback rfm.Fallback) *Service {
	return &Service{store: store, fallback: fallback}
}

// resolveSpec merges supplied parameters over full-domain defaults. A
// parameter that was not supplied keeps its default; a supplied-but-empty
// set is honored as explicit exclusion.
func (s *Service) resolveSpec(snap *snapshot.Snapshot, p FilterParams) rfm.FilterSpec {
	spec := rfm.FullDomain(snap.Records, s.fallback)

	if p.SegmentsSet {
		spec.Segments = p.Segments
	}
	if p.YearsSet {
		spec.Years = p.Years
	}
	if p.RecencyMin != nil {
		spec.Recency.Min = *p.RecencyMin
	}
	if p.RecencyMax != nil {
		spec.Recency.Max = *p.RecencyMax
	}
	if p.FrequencyMin != nil {
		spec.Frequency.Min = *p.FrequencyMin
	}
	if p.FrequencyMax != nil {
		spec.Frequency.Max = *p.FrequencyMax
	}
	if p.MonetaryMin != nil {
		spec.Monetary.Min = *p.MonetaryMin
	}
	if p.MonetaryMax != nil {
		spec.Monetary.Max = *p.MonetaryMax
	}
	return spec
}

func echo(spec rfm.FilterSpec) FilterEcho {
	return FilterEcho{
		Segments:  spec.Segments,
		Years:     spec.Years,
		Recency:   spec.Recency,
		Frequency: spec.Frequency,
		Monetary:  spec.Monetary,
	}
}

// Dashboard runs one full render cycle: filter, aggregate, chart.
func (s *Service) Dashboard(p FilterParams) DashboardResponse {
	snap := s.store.Current()
	spec := s.resolveSpec(snap, p)
	filtered := rfm.Apply(snap.Records, spec)
	counts := rfm.SegmentCounts(filtered)

	return DashboardResponse{
		SnapshotID:    snap.ID.String(),
		Filter:        echo(spec),
		Metrics:       rfm.Summarize(filtered),
		SegmentCounts: counts,
		Charts: []ChartConfig{
			segmentPieChart(counts),
			segmentBarChart(counts),
			monetaryBoxChart(filtered),
			rfmScatterChart(filtered),
		},
	}
}

// Records returns the filtered records for table display and plotting.
func (s *Service) Records(p FilterParams) RecordsResponse {
	snap := s.store.Current()
	spec := s.resolveSpec(snap, p)
	filtered := rfm.Apply(snap.Records, spec)

	records := make([]RecordDTO, 0, len(filtered))
	for _, r := range filtered {
		dto := RecordDTO{
			Recency:      r.Recency,
			Frequency:    r.Frequency,
			Monetary:     r.Monetary,
			Year:         r.Year,
			ValueSegment: r.ValueSegment,
		}
		if r.LastPurchaseDate != nil {
			d := r.LastPurchaseDate.Format(time.RFC3339)
			dto.LastPurchaseDate = &d
		}
		records = append(records, dto)
	}

	return RecordsResponse{
		SnapshotID: snap.ID.String(),
		Filter:     echo(spec),
		Count:      len(records),
		Records:    records,
	}
}

// Metrics returns the summary metric cards for the current filter.
func (s *Service) Metrics(p FilterParams) MetricsResponse {
	snap := s.store.Current()
	spec := s.resolveSpec(snap, p)

	return MetricsResponse{
		SnapshotID: snap.ID.String(),
		Filter:     echo(spec),
		Metrics:    rfm.Summarize(rfm.Apply(snap.Records, spec)),
	}
}

// Segments returns per-segment counts within the current filter.
func (s *Service) Segments(p FilterParams) SegmentsResponse {
	snap := s.store.Current()
	spec := s.resolveSpec(snap, p)

	return SegmentsResponse{
		SnapshotID: snap.ID.String(),
		Filter:     echo(spec),
		Counts:     rfm.SegmentCounts(rfm.Apply(snap.Records, spec)),
	}
}

// Bounds returns the selectable filter domain for the current snapshot.
func (s *Service) Bounds() BoundsResponse {
	snap := s.store.Current()

	return BoundsResponse{
		SnapshotID: snap.ID.String(),
		Segments:   rfm.Segments(snap.Records),
		Years:      rfm.Years(snap.Records),
		Bounds:     rfm.Bounds(snap.Records, s.fallback),
	}
}

// Reload triggers a snapshot refresh and reports the resulting version.
func (s *Service) Reload(ctx context.Context) ReloadResponse {
	snap := s.store.Reload(ctx)
	return ReloadResponse{
		SnapshotID: snap.ID.String(),
		Rows:       len(snap.Records),
		LoadedAt:   snap.LoadedAt,
	}
}
