package dashboard

import (
	"time"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
)

// FilterParams carries the raw, possibly-absent filter parameters from the
// HTTP layer. The Set flags distinguish "not supplied" (default to the full
// domain) from "supplied but empty" (explicit exclusion). Nil range pointers
// mean the bound was not supplied.
type FilterParams struct {
	Segments    []string
	SegmentsSet bool
	Years       []string
	YearsSet    bool

	RecencyMin   *float64
	RecencyMax   *float64
	FrequencyMin *float64
	FrequencyMax *float64
	MonetaryMin  *float64
	MonetaryMax  *float64
}

// FilterEcho reports the filter actually applied after defaulting, so the
// client can render its controls in the state the server used.
type FilterEcho struct {
	Segments  []string  `json:"segments"`
	Years     []string  `json:"years"`
	Recency   rfm.Range `json:"recency"`
	Frequency rfm.Range `json:"frequency"`
	Monetary  rfm.Range `json:"monetary"`
}

// DashboardResponse bundles everything one render cycle needs.
type DashboardResponse struct {
	SnapshotID    string             `json:"snapshot_id"`
	Filter        FilterEcho         `json:"filter"`
	Metrics       rfm.SummaryMetrics `json:"metrics"`
	SegmentCounts rfm.SegmentCount   `json:"segment_counts"`
	Charts        []ChartConfig      `json:"charts"`
}

// RecordsResponse carries the filtered records for table and plot display.
type RecordsResponse struct {
	SnapshotID string      `json:"snapshot_id"`
	Filter     FilterEcho  `json:"filter"`
	Count      int         `json:"count"`
	Records    []RecordDTO `json:"records"`
}

// RecordDTO is the wire form of one normalized record.
type RecordDTO struct {
	Recency          float64 `json:"recency"`
	Frequency        float64 `json:"frequency"`
	Monetary         float64 `json:"monetary"`
	LastPurchaseDate *string `json:"last_purchase_date,omitempty"`
	Year             string  `json:"year"`
	ValueSegment     string  `json:"value_segment"`
}

// MetricsResponse carries the summary metric cards.
type MetricsResponse struct {
	SnapshotID string             `json:"snapshot_id"`
	Filter     FilterEcho         `json:"filter"`
	Metrics    rfm.SummaryMetrics `json:"metrics"`
}

// SegmentsResponse carries per-segment counts within the current filter.
type SegmentsResponse struct {
	SnapshotID string           `json:"snapshot_id"`
	Filter     FilterEcho       `json:"filter"`
	Counts     rfm.SegmentCount `json:"counts"`
}

// BoundsResponse reports the selectable filter domain for the current
// snapshot: every segment, every year, and the widened numeric bounds.
type BoundsResponse struct {
	SnapshotID string        `json:"snapshot_id"`
	Segments   []string      `json:"segments"`
	Years      []string      `json:"years"`
	Bounds     rfm.BoundsSet `json:"bounds"`
}

// ReloadResponse reports the snapshot produced by an explicit reload.
type ReloadResponse struct {
	SnapshotID string    `json:"snapshot_id"`
	Rows       int       `json:"rows"`
	LoadedAt   time.Time `json:"loaded_at"`
}
