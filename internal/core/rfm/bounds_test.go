package rfm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBounds_DerivedFromData(t *testing.T) {
	ds := Dataset{
		{Recency: 3.2, Frequency: 1, Monetary: 99.5},
		{Recency: 41.7, Frequency: 9, Monetary: 10.25},
	}

	got := Bounds(ds, DefaultFallback)
	require.Equal(t, Range{Min: 3, Max: 42}, got.Recency)
	require.Equal(t, Range{Min: 1, Max: 9}, got.Frequency)
	// Monetary max is widened by one past the ceiling of the observed max.
	require.Equal(t, Range{Min: 10, Max: 101}, got.Monetary)
}

func TestBounds_EmptyDatasetUsesFallback(t *testing.T) {
	got := Bounds(Dataset{}, DefaultFallback)
	require.Equal(t, Range{Min: 0, Max: 100}, got.Recency)
	require.Equal(t, Range{Min: 0, Max: 10}, got.Frequency)
	require.Equal(t, Range{Min: 0, Max: 1000}, got.Monetary)
}

func TestSegmentsAndYears_SortedLexicographically(t *testing.T) {
	ds := Dataset{
		{Year: "2023", ValueSegment: "Mid"},
		{Year: YearUnknown, ValueSegment: "High"},
		{Year: "2021", ValueSegment: "Low"},
		{Year: "2023", ValueSegment: "High"},
	}

	require.Equal(t, []string{"High", "Low", "Mid"}, Segments(ds))
	// "Unknown" sorts after digit-led years on the string form.
	require.Equal(t, []string{"2021", "2023", YearUnknown}, Years(ds))
}

func TestFullDomain_CoversDataset(t *testing.T) {
	ds := Dataset{
		{Recency: 5, Frequency: 2, Monetary: 50, Year: "2022", ValueSegment: "High"},
		{Recency: 95, Frequency: 7, Monetary: 950, Year: YearUnknown, ValueSegment: "Low"},
	}

	spec := FullDomain(ds, DefaultFallback)
	require.Equal(t, ds, Apply(ds, spec))
}

func TestFullDomain_EmptyDataset(t *testing.T) {
	spec := FullDomain(Dataset{}, DefaultFallback)
	require.Empty(t, spec.Segments)
	require.Empty(t, spec.Years)
	require.Equal(t, Range{Min: 0, Max: 1000}, spec.Monetary)
}
