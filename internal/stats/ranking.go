package stats

// Rank returns the 1-based descending rank of the value at targetIndex.
// Ties are broken by stable input order: the first occurrence of a value
// outranks later occurrences. Returns 0 when targetIndex is out of range.
func Rank(values []float64, targetIndex int) int {
	if targetIndex < 0 || targetIndex >= len(values) {
		return 0
	}

	target := values[targetIndex]
	rank := 1
	for i, v := range values {
		if v > target {
			rank++
		} else if v == target && i < targetIndex {
			rank++
		}
	}
	return rank
}

// RelativeScore divides the value at targetIndex by the maximum observed
// value, returning a score in [0,1]. A zero maximum yields 0.
func RelativeScore(values []float64, targetIndex int) float64 {
	if targetIndex < 0 || targetIndex >= len(values) {
		return 0
	}

	max := Max(values)
	if max == 0 {
		return 0
	}
	return Clamp01(values[targetIndex] / max)
}

// PercentChange reports the period-over-period change as a percentage.
// A zero previous value with a nonzero current value reports +100%;
// zero over zero reports 0%.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
