package stats

import "testing"

// TestRankDescending checks 1-based descending ranks.
func TestRankDescending(t *testing.T) {
	values := []float64{10, 30, 20}

	if r := Rank(values, 1); r != 1 {
		t.Fatalf("expected rank 1 for the max, got %d", r)
	}
	if r := Rank(values, 2); r != 2 {
		t.Fatalf("expected rank 2, got %d", r)
	}
	if r := Rank(values, 0); r != 3 {
		t.Fatalf("expected rank 3 for the min, got %d", r)
	}
}

// TestRankTiesStableByInputOrder ensures the first occurrence of a tied
// value outranks later occurrences.
func TestRankTiesStableByInputOrder(t *testing.T) {
	values := []float64{5, 5, 5}

	if r := Rank(values, 0); r != 1 {
		t.Fatalf("first tied value should rank 1, got %d", r)
	}
	if r := Rank(values, 1); r != 2 {
		t.Fatalf("second tied value should rank 2, got %d", r)
	}
	if r := Rank(values, 2); r != 3 {
		t.Fatalf("third tied value should rank 3, got %d", r)
	}
}

// TestRankOutOfRange ensures invalid indices yield 0.
func TestRankOutOfRange(t *testing.T) {
	if r := Rank([]float64{1}, 5); r != 0 {
		t.Fatalf("expected 0 for out-of-range index, got %d", r)
	}
}

// TestRelativeScore checks normalization against the max, including the
// zero-max guard.
func TestRelativeScore(t *testing.T) {
	values := []float64{2, 8, 4}

	if s := RelativeScore(values, 0); s != 0.25 {
		t.Fatalf("expected 0.25, got %f", s)
	}
	if s := RelativeScore(values, 1); s != 1 {
		t.Fatalf("expected 1 for the max, got %f", s)
	}
	if s := RelativeScore([]float64{0, 0}, 0); s != 0 {
		t.Fatalf("zero max must score 0, got %f", s)
	}
}

// TestPercentChangeConventions checks the zero-previous conventions.
func TestPercentChangeConventions(t *testing.T) {
	if p := PercentChange(150, 100); p != 50 {
		t.Fatalf("expected +50%%, got %f", p)
	}
	if p := PercentChange(50, 100); p != -50 {
		t.Fatalf("expected -50%%, got %f", p)
	}
	if p := PercentChange(5, 0); p != 100 {
		t.Fatalf("zero previous with nonzero current must report +100%%, got %f", p)
	}
	if p := PercentChange(0, 0); p != 0 {
		t.Fatalf("zero over zero must report 0%%, got %f", p)
	}
}

// TestClamp01 checks the clamping bounds.
func TestClamp01(t *testing.T) {
	if v := Clamp01(-0.5); v != 0 {
		t.Fatalf("expected 0, got %f", v)
	}
	if v := Clamp01(1.5); v != 1 {
		t.Fatalf("expected 1, got %f", v)
	}
	if v := Clamp01(0.42); v != 0.42 {
		t.Fatalf("expected 0.42, got %f", v)
	}
}

// TestRatioZeroDenominator ensures ratios degrade to 0 instead of NaN.
func TestRatioZeroDenominator(t *testing.T) {
	if r := Ratio(3, 0); r != 0 {
		t.Fatalf("expected 0 for zero denominator, got %f", r)
	}
	if r := Ratio(1, 4); r != 0.25 {
		t.Fatalf("expected 0.25, got %f", r)
	}
}

// TestNormalizeZeroMax ensures a zero max yields all zeros.
func TestNormalizeZeroMax(t *testing.T) {
	result := Normalize([]float64{0, 0, 0})
	for i, v := range result {
		if v != 0 {
			t.Fatalf("expected 0 at index %d, got %f", i, v)
		}
	}

	result = Normalize([]float64{1, 2, 4})
	if result[2] != 1 || result[0] != 0.25 {
		t.Fatalf("unexpected normalization: %v", result)
	}
}
