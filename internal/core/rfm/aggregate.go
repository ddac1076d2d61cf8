package rfm

import "github.com/shopspring/decimal"

// Summarize computes the metric snapshot over an already-filtered dataset.
// Sums are accumulated with exact decimal arithmetic; rounding to two places
// happens only on the way out. An empty dataset yields all zeros, never NaN.
func Summarize(ds Dataset) SummaryMetrics {
	if len(ds) == 0 {
		return SummaryMetrics{}
	}

	var sumRecency, sumFrequency, sumMonetary decimal.Decimal
	for _, r := range ds {
		sumRecency = sumRecency.Add(decimal.NewFromFloat(r.Recency))
		sumFrequency = sumFrequency.Add(decimal.NewFromFloat(r.Frequency))
		sumMonetary = sumMonetary.Add(decimal.NewFromFloat(r.Monetary))
	}

	n := decimal.NewFromInt(int64(len(ds)))
	return SummaryMetrics{
		MeanRecency:   round2(sumRecency.Div(n)),
		MeanFrequency: round2(sumFrequency.Div(n)),
		MeanMonetary:  round2(sumMonetary.Div(n)),
		Count:         len(ds),
		TotalMonetary: round2(sumMonetary),
	}
}

// SegmentCounts counts records per value segment within the filtered dataset.
func SegmentCounts(ds Dataset) SegmentCount {
	counts := make(SegmentCount)
	for _, r := range ds {
		counts[r.ValueSegment]++
	}
	return counts
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
