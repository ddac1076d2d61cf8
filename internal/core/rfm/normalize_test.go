package rfm

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantValue   float64
		wantPresent bool
	}{
		{name: "plain integer", input: "42", wantValue: 42, wantPresent: true},
		{name: "decimal", input: "19.95", wantValue: 19.95, wantPresent: true},
		{name: "currency prefix", input: "$1,250.50", wantValue: 1250.5, wantPresent: true},
		{name: "padded", input: "  7 ", wantValue: 7, wantPresent: true},
		{name: "negative", input: "-3", wantValue: -3, wantPresent: true},
		{name: "empty missing", input: "", wantPresent: false},
		{name: "garbage missing", input: "n/a", wantPresent: false},
		{name: "nan missing", input: "NaN", wantPresent: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceNumeric(tc.input)
			require.Equal(t, tc.wantPresent, got.present)
			if tc.wantPresent {
				require.Equal(t, tc.wantValue, got.value)
			}
		})
	}
}

func TestNormalize_ImputesMissingValues(t *testing.T) {
	raw := []RawRecord{
		{Recency: "10", Frequency: "2", Monetary: "100", ValueSegment: "High"},
		{Recency: "30", Frequency: "4", Monetary: "300", ValueSegment: "Mid"},
		{Recency: "50", Frequency: "6", Monetary: "500", ValueSegment: "Low"},
		{Recency: "", Frequency: "", Monetary: "oops", ValueSegment: "Low"},
	}

	ds := Normalize(raw)
	require.Len(t, ds, 4)

	// Medians are computed over the coerced column before imputation.
	require.Equal(t, 30.0, ds[3].Recency)
	require.Equal(t, 300.0, ds[3].Monetary)

	// Frequency imputes with the constant 1, not the median.
	require.Equal(t, 1.0, ds[3].Frequency)

	// Valid rows pass through untouched.
	require.Equal(t, 10.0, ds[0].Recency)
	require.Equal(t, 500.0, ds[2].Monetary)
}

func TestNormalize_EvenCountMedian(t *testing.T) {
	raw := []RawRecord{
		{Recency: "10", Frequency: "1", Monetary: "100"},
		{Recency: "20", Frequency: "1", Monetary: "200"},
		{Recency: "", Frequency: "1", Monetary: "300"},
		{Recency: "40", Frequency: "1", Monetary: ""},
		{Recency: "50", Frequency: "1", Monetary: "400"},
	}

	ds := Normalize(raw)

	// Present recency values are [10 20 40 50]; median is 30.
	require.Equal(t, 30.0, ds[2].Recency)
	// Present monetary values are [100 200 300 400]; median is 250.
	require.Equal(t, 250.0, ds[3].Monetary)
}

func TestNormalize_DeriveYear(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantYear string
		wantNil  bool
	}{
		{name: "iso date", date: "2023-06-15", wantYear: "2023"},
		{name: "iso datetime", date: "2022-01-31 08:30:00", wantYear: "2022"},
		{name: "slash date", date: "2021/12/01", wantYear: "2021"},
		{name: "us slash date", date: "06/15/2020", wantYear: "2020"},
		{name: "long form", date: "Jan 2, 2019", wantYear: "2019"},
		{name: "unparsable", date: "sometime last spring", wantYear: YearUnknown, wantNil: true},
		{name: "empty", date: "", wantYear: YearUnknown, wantNil: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds := Normalize([]RawRecord{{Recency: "1", Frequency: "1", Monetary: "1", LastPurchaseDate: tc.date}})
			require.Equal(t, tc.wantYear, ds[0].Year)
			if tc.wantNil {
				require.Nil(t, ds[0].LastPurchaseDate)
			} else {
				require.NotNil(t, ds[0].LastPurchaseDate)
			}
		})
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	require.Empty(t, Normalize(nil))
	require.Empty(t, Normalize([]RawRecord{}))
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := []RawRecord{
		{Recency: "10", Frequency: "", Monetary: "100.50", LastPurchaseDate: "2023-06-15", ValueSegment: "High"},
		{Recency: "", Frequency: "3", Monetary: "", LastPurchaseDate: "bogus", ValueSegment: "Low"},
	}

	first := Normalize(raw)
	second := Normalize(rawForm(first))
	require.Equal(t, first, second)
}

// rawForm renders normalized records back into source form, simulating a
// second pass over already-clean data.
func rawForm(ds Dataset) []RawRecord {
	out := make([]RawRecord, len(ds))
	for i, r := range ds {
		out[i] = RawRecord{
			Recency:      strconv.FormatFloat(r.Recency, 'f', -1, 64),
			Frequency:    strconv.FormatFloat(r.Frequency, 'f', -1, 64),
			Monetary:     strconv.FormatFloat(r.Monetary, 'f', -1, 64),
			ValueSegment: r.ValueSegment,
		}
		if r.LastPurchaseDate != nil {
			out[i].LastPurchaseDate = r.LastPurchaseDate.Format(time.RFC3339)
		}
	}
	return out
}
