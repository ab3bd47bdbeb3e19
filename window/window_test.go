package window

import "testing"

func TestMakeCount(t *testing.T) {
	// For N > L+1 the builder returns exactly N-L-1 pairs
	tests := []struct {
		n, length int
	}{
		{10, 3},
		{41, 5},
		{7, 1},
		{100, 12},
	}

	for _, tt := range tests {
		values := make([]float64, tt.n)
		for i := range values {
			values[i] = float64(i)
		}

		pairs, err := Make(values, tt.length)
		if err != nil {
			t.Fatalf("Make(n=%d, L=%d) failed: %v", tt.n, tt.length, err)
		}
		want := tt.n - tt.length - 1
		if len(pairs) != want {
			t.Errorf("Make(n=%d, L=%d): expected %d pairs, got %d", tt.n, tt.length, want, len(pairs))
		}
	}
}

func TestMakeOffsets(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i * 10)
	}

	length := 4
	pairs, err := Make(values, length)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	for i, p := range pairs {
		if len(p.History) != length {
			t.Fatalf("Pair %d: history length %d, expected %d", i, len(p.History), length)
		}
		for k, v := range p.History {
			if v != values[i+k] {
				t.Errorf("Pair %d history[%d]: expected %f, got %f", i, k, values[i+k], v)
			}
		}
		if p.Label != values[i+length] {
			t.Errorf("Pair %d label: expected %f, got %f", i, values[i+length], p.Label)
		}
	}
}

func TestMakeFirstPair(t *testing.T) {
	values := []float64{555, 98, 288, 493, 684, 811, 2651, 769}

	pairs, err := Make(values, 5)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if len(pairs) == 0 {
		t.Fatal("Expected at least one pair")
	}

	expected := []float64{555, 98, 288, 493, 684}
	for k, v := range expected {
		if pairs[0].History[k] != v {
			t.Errorf("First history[%d]: expected %f, got %f", k, v, pairs[0].History[k])
		}
	}
	if pairs[0].Label != 811 {
		t.Errorf("First label: expected 811, got %f", pairs[0].Label)
	}
}

func TestMakeDegenerate(t *testing.T) {
	// N <= L+1 produces an empty, non-nil result
	for _, n := range []int{0, 3, 6} {
		values := make([]float64, n)
		pairs, err := Make(values, 5)
		if err != nil {
			t.Fatalf("Make failed for n=%d: %v", n, err)
		}
		if pairs == nil {
			t.Errorf("n=%d: expected non-nil result", n)
		}
		if len(pairs) != 0 {
			t.Errorf("n=%d: expected empty result, got %d pairs", n, len(pairs))
		}
	}
}

func TestMakeInvalidLength(t *testing.T) {
	if _, err := Make([]float64{1, 2, 3}, 0); err == nil {
		t.Error("Expected error for zero window length")
	}
	if _, err := Make([]float64{1, 2, 3}, -2); err == nil {
		t.Error("Expected error for negative window length")
	}
}

func TestMakeCopiesHistory(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	pairs, err := Make(values, 3)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	values[0] = 99
	if pairs[0].History[0] != 1 {
		t.Error("Mutating the input must not change built pairs")
	}
}
