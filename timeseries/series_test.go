package timeseries

import (
	"math"
	"testing"
)

func TestNewSeries(t *testing.T) {
	values := []float64{555, 98, 288, 493, 684}
	series := New(values)

	if series.Len() != 5 {
		t.Errorf("Expected length 5, got %d", series.Len())
	}
	if len(series.Timestamps) != 5 {
		t.Errorf("Expected 5 timestamps, got %d", len(series.Timestamps))
	}

	// Timestamps should be strictly increasing daily
	for i := 1; i < len(series.Timestamps); i++ {
		if !series.Timestamps[i].After(series.Timestamps[i-1]) {
			t.Errorf("Timestamps not strictly increasing at index %d", i)
		}
	}
}

func TestNewWithTimestampsMismatch(t *testing.T) {
	series := New([]float64{1, 2, 3})
	_, err := NewWithTimestamps(series.Timestamps[:2], series.Values)
	if err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestSeriesStatistics(t *testing.T) {
	values := []float64{2, 4, 6, 8, 10}
	series := New(values)

	if series.Mean() != 6 {
		t.Errorf("Expected mean 6, got %f", series.Mean())
	}
	if series.Min() != 2 {
		t.Errorf("Expected min 2, got %f", series.Min())
	}
	if series.Max() != 10 {
		t.Errorf("Expected max 10, got %f", series.Max())
	}

	// Sample variance of 2,4,6,8,10 is 10
	if math.Abs(series.Variance()-10) > 1e-10 {
		t.Errorf("Expected variance 10, got %f", series.Variance())
	}
	if math.Abs(series.Std()-math.Sqrt(10)) > 1e-10 {
		t.Errorf("Expected std sqrt(10), got %f", series.Std())
	}
}

func TestDiffRecoversIncrements(t *testing.T) {
	// Cumulative totals -> daily increments
	cumulative := []float64{555, 653, 941, 1434, 2118}
	series := New(cumulative)

	daily := series.Diff()
	expected := []float64{98, 288, 493, 684}

	if daily.Len() != len(expected) {
		t.Fatalf("Expected %d increments, got %d", len(expected), daily.Len())
	}
	for i, v := range expected {
		if daily.Values[i] != v {
			t.Errorf("Increment %d: expected %f, got %f", i, v, daily.Values[i])
		}
	}
}

func TestDiffShortSeries(t *testing.T) {
	series := New([]float64{42})
	if series.Diff().Len() != 0 {
		t.Error("Diff of a one-point series should be empty")
	}
}

func TestSlice(t *testing.T) {
	series := New([]float64{1, 2, 3, 4, 5, 6})

	subset := series.Slice(1, 4)
	if subset.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", subset.Len())
	}
	if subset.Values[0] != 2 || subset.Values[2] != 4 {
		t.Errorf("Unexpected slice values: %v", subset.Values)
	}

	// Out-of-range bounds are clamped
	clamped := series.Slice(-3, 100)
	if clamped.Len() != 6 {
		t.Errorf("Expected clamped slice of length 6, got %d", clamped.Len())
	}

	// Degenerate range is empty
	if series.Slice(4, 2).Len() != 0 {
		t.Error("Expected empty series for inverted range")
	}
}

func TestSliceIsACopy(t *testing.T) {
	series := New([]float64{1, 2, 3, 4})
	subset := series.Slice(0, 2)

	subset.Values[0] = 99
	if series.Values[0] != 1 {
		t.Error("Mutating a slice should not affect the original series")
	}
}

func TestCopyIndependence(t *testing.T) {
	series := New([]float64{1, 2, 3})
	clone := series.Copy()

	clone.Values[1] = 42
	if series.Values[1] != 2 {
		t.Error("Mutating a copy should not affect the original series")
	}
}

func TestIsFinite(t *testing.T) {
	if !New([]float64{1, 2, 3}).IsFinite() {
		t.Error("Finite series reported as non-finite")
	}
	if New([]float64{1, math.NaN(), 3}).IsFinite() {
		t.Error("NaN not detected")
	}
	if New([]float64{1, math.Inf(1), 3}).IsFinite() {
		t.Error("Inf not detected")
	}
}
