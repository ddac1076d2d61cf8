package rfm

import (
	"math"
	"sort"
)

// Fallback supplies the selectable ranges used when the dataset is empty, so
// range controls never render with an invalid or empty domain.
type Fallback struct {
	Recency   Range
	Frequency Range
	Monetary  Range
}

// DefaultFallback mirrors the dashboard's historical fixed ranges.
var DefaultFallback = Fallback{
	Recency:   Range{Min: 0, Max: 100},
	Frequency: Range{Min: 0, Max: 10},
	Monetary:  Range{Min: 0, Max: 1000},
}

// BoundsSet holds the selectable range for each numeric field.
type BoundsSet struct {
	Recency   Range `json:"recency"`
	Frequency Range `json:"frequency"`
	Monetary  Range `json:"monetary"`
}

// Bounds derives the selectable range per numeric field: floor of the
// observed minimum to ceil of the observed maximum. The monetary maximum is
// widened by one unit so the top record stays strictly inside the selectable
// range. An empty dataset yields the fallback ranges.
func Bounds(ds Dataset, fb Fallback) BoundsSet {
	if len(ds) == 0 {
		return BoundsSet{Recency: fb.Recency, Frequency: fb.Frequency, Monetary: fb.Monetary}
	}

	minR, maxR := ds[0].Recency, ds[0].Recency
	minF, maxF := ds[0].Frequency, ds[0].Frequency
	minM, maxM := ds[0].Monetary, ds[0].Monetary
	for _, r := range ds[1:] {
		minR, maxR = math.Min(minR, r.Recency), math.Max(maxR, r.Recency)
		minF, maxF = math.Min(minF, r.Frequency), math.Max(maxF, r.Frequency)
		minM, maxM = math.Min(minM, r.Monetary), math.Max(maxM, r.Monetary)
	}

	return BoundsSet{
		Recency:   Range{Min: math.Floor(minR), Max: math.Ceil(maxR)},
		Frequency: Range{Min: math.Floor(minF), Max: math.Ceil(maxF)},
		Monetary:  Range{Min: math.Floor(minM), Max: math.Ceil(maxM) + 1},
	}
}

// Segments returns the distinct value segments sorted lexicographically.
func Segments(ds Dataset) []string {
	return distinct(ds, func(r Record) string { return r.ValueSegment })
}

// Years returns the distinct years sorted lexicographically on the string
// form. "Unknown" participates in the same ordering as numeric years.
func Years(ds Dataset) []string {
	return distinct(ds, func(r Record) string { return r.Year })
}

// FullDomain builds the first-render filter: every segment, every year and
// the derived bounds. Applying it returns the dataset unchanged.
func FullDomain(ds Dataset, fb Fallback) FilterSpec {
	b := Bounds(ds, fb)
	return FilterSpec{
		Segments:  Segments(ds),
		Years:     Years(ds),
		Recency:   b.Recency,
		Frequency: b.Frequency,
		Monetary:  b.Monetary,
	}
}

func distinct(ds Dataset, key func(Record) string) []string {
	seen := make(map[string]bool, 8)
	var out []string
	for _, r := range ds {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
