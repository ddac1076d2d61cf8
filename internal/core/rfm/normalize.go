package rfm

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing mixed-format purchase dates.
// Anything that matches none of them yields a nil date, not an error.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// optional is the result of a per-field numeric coercion: the value plus a
// presence flag. Missing is a per-value state, never a row-level failure.
type optional struct {
	value   float64
	present bool
}

// Normalize transforms raw source rows into a dataset satisfying the record
// invariants: numeric fields coerced and imputed, dates parsed, Year derived.
// The transformation is one-way; original raw values are discarded.
//
// Imputation fills missing recency and monetary with the column median
// (computed over the coerced-but-not-yet-imputed column) and missing
// frequency with the constant 1. Normalizing already-normalized data is a
// no-op.
func Normalize(raw []RawRecord) Dataset {
	if len(raw) == 0 {
		return Dataset{}
	}

	recency := make([]optional, len(raw))
	frequency := make([]optional, len(raw))
	monetary := make([]optional, len(raw))
	for i, r := range raw {
		recency[i] = coerceNumeric(r.Recency)
		frequency[i] = coerceNumeric(r.Frequency)
		monetary[i] = coerceNumeric(r.Monetary)
	}

	recencyFill := median(recency)
	monetaryFill := median(monetary)

	out := make(Dataset, len(raw))
	for i, r := range raw {
		rec := Record{
			Recency:      impute(recency[i], recencyFill),
			Frequency:    impute(frequency[i], 1),
			Monetary:     impute(monetary[i], monetaryFill),
			Year:         YearUnknown,
			ValueSegment: strings.TrimSpace(r.ValueSegment),
		}
		if t, ok := parseDate(r.LastPurchaseDate); ok {
			rec.LastPurchaseDate = &t
			rec.Year = strconv.Itoa(t.Year())
		}
		out[i] = rec
	}
	return out
}

// coerceNumeric parses one raw field into a float64. Currency symbols and
// thousands separators are tolerated. The flag reports presence: empty or
// malformed input is a missing value.
func coerceNumeric(s string) optional {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return optional{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return optional{}
	}
	return optional{value: v, present: true}
}

func impute(o optional, fill float64) float64 {
	if o.present {
		return o.value
	}
	return fill
}

// median returns the median of the present values in the column, or 0 when
// the entire column is missing.
func median(col []optional) float64 {
	vals := make([]float64, 0, len(col))
	for _, o := range col {
		if o.present {
			vals = append(vals, o.value)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2
	}
	return vals[mid]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
