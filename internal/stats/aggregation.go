package stats

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Clamp01 clamps a value to the [0, 1] range
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ratio divides count by total, returning 0 when total is 0
func Ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return Clamp01(float64(count) / float64(total))
}

// Normalize normalizes values against their maximum, mapping max to 1.0.
// Returns all zeros when the maximum is 0.
func Normalize(values []float64) []float64 {
	max := Max(values)
	result := make([]float64, len(values))
	if max == 0 {
		return result
	}

	for i, v := range values {
		result[i] = v / max
	}
	return result
}
