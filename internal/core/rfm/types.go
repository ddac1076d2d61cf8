package rfm

import "time"

// YearUnknown is the categorical year assigned when a record's last purchase
// date could not be parsed. It shares one string domain with numeric years so
// both filter and sort uniformly.
const YearUnknown = "Unknown"

// RawRecord is one source row before normalization. Every value is the exact
// text the source produced; an empty string means the value was absent.
// Coercion and imputation happen in Normalize, never at the source.
type RawRecord struct {
	Recency          string
	Frequency        string
	Monetary         string
	LastPurchaseDate string
	ValueSegment     string
}

// Record is one customer's normalized purchase summary. After normalization
// the three numeric fields are always present; Year is always non-empty.
type Record struct {
	Recency          float64    `json:"recency"`
	Frequency        float64    `json:"frequency"`
	Monetary         float64    `json:"monetary"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty"`
	Year             string     `json:"year"`
	ValueSegment     string     `json:"value_segment"`
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// Range is an inclusive [Min, Max] numeric bound. Min > Max matches nothing.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the inclusive range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSpec is a conjunction of categorical and range constraints over a
// dataset. It is built fresh per filter application from externally supplied
// parameters and never persisted. An empty Segments or Years slice is an
// explicit exclusion, not "match all".
type FilterSpec struct {
	Segments  []string
	Years     []string
	Recency   Range
	Frequency Range
	Monetary  Range
}

// SummaryMetrics is a read-only aggregate snapshot over a filtered dataset.
// Means and the monetary total carry two decimal places; rounding is applied
// at output, not during accumulation.
type SummaryMetrics struct {
	MeanRecency   float64 `json:"mean_recency"`
	MeanFrequency float64 `json:"mean_frequency"`
	MeanMonetary  float64 `json:"mean_monetary"`
	Count         int     `json:"count"`
	TotalMonetary float64 `json:"total_monetary"`
}

// SegmentCount maps a value segment label to the number of records carrying
// it. Segments with zero matches are absent. Iteration order is unspecified;
// consumers needing a stable order must sort the keys themselves.
type SegmentCount map[string]int
