package rfm

// Apply returns the subsequence of ds satisfying every constraint in spec:
// segment membership, year membership, and the three inclusive numeric
// ranges. The input is never mutated and relative order is preserved.
func Apply(ds Dataset, spec FilterSpec) Dataset {
	segments := toSet(spec.Segments)
	years := toSet(spec.Years)

	out := make(Dataset, 0, len(ds))
	for _, r := range ds {
		if !segments[r.ValueSegment] || !years[r.Year] {
			continue
		}
		if !spec.Recency.Contains(r.Recency) ||
			!spec.Frequency.Contains(r.Frequency) ||
			!spec.Monetary.Contains(r.Monetary) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
