package lstm

import (
	"math"
	"testing"

	"github.com/sartorproj/golstm/window"
)

// rampPairs builds training pairs from a smooth increasing sequence in
// (0, 1), the easiest thing a sequence regressor can learn.
func rampPairs(t *testing.T, n, windowSize int) []window.Pair {
	t.Helper()
	values := make([]float64, n)
	for i := range values {
		values[i] = 0.1 + 0.8*float64(i)/float64(n-1)
	}
	pairs, err := window.Make(values, windowSize)
	if err != nil {
		t.Fatalf("Failed to build pairs: %v", err)
	}
	return pairs
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window", func(c *Config) { c.WindowSize = 0 }},
		{"hidden", func(c *Config) { c.HiddenSize = 0 }},
		{"epochs", func(c *Config) { c.Epochs = 0 }},
		{"lr zero", func(c *Config) { c.LearningRate = 0 }},
		{"lr negative", func(c *Config) { c.LearningRate = -0.1 }},
		{"log interval", func(c *Config) { c.LogEvery = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenSize = -1
	if _, err := New(cfg); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestPredictBeforeFit(t *testing.T) {
	model, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := model.Predict(make([]float64, DefaultConfig().WindowSize)); err == nil {
		t.Error("Expected error predicting before Fit")
	}
	if model.Summary() != nil {
		t.Error("Summary should be nil before Fit")
	}
}

func TestFitReducesLoss(t *testing.T) {
	cfg := Config{
		WindowSize:   5,
		HiddenSize:   8,
		Epochs:       150,
		LearningRate: 0.02,
		Seed:         1,
		LogEvery:     1,
	}
	model, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pairs := rampPairs(t, 30, cfg.WindowSize)

	var losses []float64
	err = model.Fit(pairs, func(epoch int, loss float64) {
		losses = append(losses, loss)
	})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if len(losses) != cfg.Epochs {
		t.Fatalf("Expected %d loss reports, got %d", cfg.Epochs, len(losses))
	}
	for i, l := range losses {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			t.Fatalf("Non-finite loss at epoch %d", i+1)
		}
	}

	first, last := losses[0], losses[len(losses)-1]
	if last >= first {
		t.Errorf("Loss did not decrease: first=%f, last=%f", first, last)
	}
	t.Logf("Loss: %.6f -> %.6f over %d epochs", first, last, cfg.Epochs)

	summary := model.Summary()
	if summary == nil {
		t.Fatal("Summary should not be nil after Fit")
	}
	if summary.NPairs != len(pairs) {
		t.Errorf("Expected %d pairs in summary, got %d", len(pairs), summary.NPairs)
	}
	if summary.FinalLoss != last {
		t.Errorf("Summary final loss %f does not match last report %f", summary.FinalLoss, last)
	}
}

func TestFitCallbackEveryEpoch(t *testing.T) {
	cfg := Config{
		WindowSize:   3,
		HiddenSize:   4,
		Epochs:       25,
		LearningRate: 0.02,
		Seed:         1,
		LogEvery:     10,
	}
	model, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var epochs []int
	err = model.Fit(rampPairs(t, 20, cfg.WindowSize), func(epoch int, loss float64) {
		epochs = append(epochs, epoch)
	})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// The callback drives progress reporting, so it must fire on every
	// epoch in order regardless of LogEvery.
	if len(epochs) != cfg.Epochs {
		t.Fatalf("Expected %d callback invocations, got %d", cfg.Epochs, len(epochs))
	}
	for i, e := range epochs {
		if e != i+1 {
			t.Errorf("Invocation %d: expected epoch %d, got %d", i, i+1, e)
		}
	}
}

func TestFitErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Epochs = 5

	model, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := model.Fit(nil, nil); err == nil {
		t.Error("Expected error for empty training set")
	}

	short := []window.Pair{{History: []float64{0.1, 0.2}, Label: 0.3}}
	if err := model.Fit(short, nil); err == nil {
		t.Error("Expected error for history shorter than window size")
	}

	bad := []window.Pair{{History: []float64{0.1, 0.2, 0.3, 0.4, 0.5}, Label: math.NaN()}}
	if err := model.Fit(bad, nil); err == nil {
		t.Error("Expected error for non-finite label")
	}
}

func TestFitDeterministic(t *testing.T) {
	cfg := Config{
		WindowSize:   4,
		HiddenSize:   6,
		Epochs:       40,
		LearningRate: 0.02,
		Seed:         7,
		LogEvery:     40,
	}
	pairs := rampPairs(t, 25, cfg.WindowSize)

	var preds [2]float64
	for i := 0; i < 2; i++ {
		model, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if err := model.Fit(pairs, nil); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		preds[i], err = model.Predict(pairs[0].History)
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
	}

	if preds[0] != preds[1] {
		t.Errorf("Same seed and data produced different predictions: %v vs %v", preds[0], preds[1])
	}
}

func TestPredictIsStateless(t *testing.T) {
	cfg := Config{
		WindowSize:   4,
		HiddenSize:   6,
		Epochs:       20,
		LearningRate: 0.02,
		Seed:         3,
		LogEvery:     20,
	}
	model, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	pairs := rampPairs(t, 25, cfg.WindowSize)
	if err := model.Fit(pairs, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Interleave predictions on different windows; each pass starts from a
	// fresh zero state, so repeats must agree exactly.
	a1, err := model.Predict(pairs[0].History)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if _, err := model.Predict(pairs[5].History); err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	a2, err := model.Predict(pairs[0].History)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if a1 != a2 {
		t.Errorf("Repeated prediction differs: %v vs %v", a1, a2)
	}
}

func TestPredictValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Epochs = 2
	model, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := model.Fit(rampPairs(t, 20, cfg.WindowSize), nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if _, err := model.Predict([]float64{0.1, 0.2}); err == nil {
		t.Error("Expected error for wrong history length")
	}
	bad := []float64{0.1, 0.2, math.Inf(1), 0.4, 0.5}
	if _, err := model.Predict(bad); err == nil {
		t.Error("Expected error for non-finite history")
	}
}
