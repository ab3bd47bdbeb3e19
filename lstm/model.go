// Package lstm implements a small two-layer LSTM regressor for univariate
// sequence prediction.
package lstm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sartorproj/golstm/window"
)

// Config holds the model hyperparameters.
type Config struct {
	WindowSize   int     // Length of each input history window
	HiddenSize   int     // Hidden units per LSTM layer
	Epochs       int     // Full-batch training epochs
	LearningRate float64 // Gradient-descent step size
	Seed         int64   // Weight initialization seed
	LogEvery     int     // Epoch interval callers use when printing losses
}

// DefaultConfig returns a configuration suited to short daily series.
func DefaultConfig() Config {
	return Config{
		WindowSize:   5,
		HiddenSize:   16,
		Epochs:       400,
		LearningRate: 0.05,
		Seed:         42,
		LogEvery:     50,
	}
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return errors.New("window size must be at least 1")
	}
	if c.HiddenSize < 1 {
		return errors.New("hidden size must be at least 1")
	}
	if c.Epochs < 1 {
		return errors.New("epochs must be at least 1")
	}
	if c.LearningRate <= 0 {
		return errors.New("learning rate must be positive")
	}
	if c.LogEvery < 1 {
		return errors.New("log interval must be at least 1")
	}
	return nil
}

// Model is a two-layer LSTM regressor: the scalar input feeds the first
// cell, its hidden output feeds the second, and a dense head maps the
// final hidden vector to one scalar prediction.
type Model struct {
	Config Config

	layer1 *Cell
	layer2 *Cell
	wy     []float64 // dense head weights
	by     float64   // dense head bias

	fitted    bool
	finalLoss float64
	nPairs    int
}

// New creates an untrained model with deterministically seeded weights.
func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	m := &Model{
		Config: cfg,
		layer1: newCell(1, cfg.HiddenSize, rng),
		layer2: newCell(cfg.HiddenSize, cfg.HiddenSize, rng),
		wy:     make([]float64, cfg.HiddenSize),
		by:     0,
	}
	std := 1.0 / math.Sqrt(float64(cfg.HiddenSize))
	for j := range m.wy {
		m.wy[j] = rng.NormFloat64() * std
	}
	return m, nil
}

// EpochFunc receives the mean squared error after each epoch.
type EpochFunc func(epoch int, loss float64)

// Fit trains the model with full-batch gradient descent. Every epoch runs
// a forward and backward pass over all pairs from a fresh zero state,
// averages the gradients, and applies one clipped update. The callback, if
// non-nil, fires after every epoch; callers that only want periodic
// reports filter on Config.LogEvery themselves.
func (m *Model) Fit(pairs []window.Pair, onEpoch EpochFunc) error {
	if len(pairs) == 0 {
		return errors.New("no training pairs")
	}
	for i, p := range pairs {
		if len(p.History) != m.Config.WindowSize {
			return fmt.Errorf("pair %d: history length %d does not match window size %d",
				i, len(p.History), m.Config.WindowSize)
		}
		if !finiteAll(p.History) || math.IsNaN(p.Label) || math.IsInf(p.Label, 0) {
			return fmt.Errorf("pair %d: non-finite value", i)
		}
	}

	for epoch := 1; epoch <= m.Config.Epochs; epoch++ {
		loss, err := m.trainEpoch(pairs)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		m.finalLoss = loss
		if onEpoch != nil {
			onEpoch(epoch, loss)
		}
	}

	m.fitted = true
	m.nPairs = len(pairs)
	return nil
}

// trainEpoch runs one full-batch pass and returns the mean squared error.
func (m *Model) trainEpoch(pairs []window.Pair) (float64, error) {
	n := m.Config.HiddenSize
	steps := m.Config.WindowSize

	grads1 := newCellGrads(1, n)
	grads2 := newCellGrads(n, n)
	dWy := make([]float64, n)
	dBy := 0.0

	sse := 0.0
	for _, pair := range pairs {
		caches1 := make([]*stepCache, steps)
		caches2 := make([]*stepCache, steps)

		st1 := NewState(n)
		st2 := NewState(n)
		for t := 0; t < steps; t++ {
			caches1[t] = m.layer1.forward([]float64{pair.History[t]}, st1)
			st1 = State{Hidden: caches1[t].h, Cell: caches1[t].c}
			caches2[t] = m.layer2.forward(st1.Hidden, st2)
			st2 = State{Hidden: caches2[t].h, Cell: caches2[t].c}
		}

		pred := m.by
		for j := 0; j < n; j++ {
			pred += m.wy[j] * st2.Hidden[j]
		}
		residual := pred - pair.Label
		sse += residual * residual

		// Dense head gradients, and the seed gradient into layer 2.
		dLoss := 2 * residual
		dh2 := make([]float64, n)
		dc2 := make([]float64, n)
		for j := 0; j < n; j++ {
			dWy[j] += dLoss * st2.Hidden[j]
			dh2[j] = dLoss * m.wy[j]
		}
		dBy += dLoss

		dh1 := make([]float64, n)
		dc1 := make([]float64, n)
		for t := steps - 1; t >= 0; t-- {
			dx2, dhPrev2, dcPrev2 := m.layer2.backward(caches2[t], dh2, dc2, grads2)
			for j := 0; j < n; j++ {
				dh1[j] += dx2[j]
			}
			_, dhPrev1, dcPrev1 := m.layer1.backward(caches1[t], dh1, dc1, grads1)

			dh2, dc2 = dhPrev2, dcPrev2
			dh1, dc1 = dhPrev1, dcPrev1
		}
	}

	loss := sse / float64(len(pairs))
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return 0, errors.New("non-finite training loss")
	}

	scale := 1 / float64(len(pairs))
	lr := m.Config.LearningRate
	m.layer1.applyGrads(grads1, lr, scale)
	m.layer2.applyGrads(grads2, lr, scale)
	for j := 0; j < n; j++ {
		m.wy[j] -= lr * clipGrad(dWy[j]*scale)
	}
	m.by -= lr * clipGrad(dBy * scale)

	return loss, nil
}

// Predict runs one forward pass over a history window and returns the
// next-step prediction. The pass starts from a fresh zero state, so
// predictions on different windows are independent.
func (m *Model) Predict(history []float64) (float64, error) {
	if !m.fitted {
		return 0, errors.New("model must be fitted before prediction")
	}
	if len(history) != m.Config.WindowSize {
		return 0, fmt.Errorf("history length %d does not match window size %d",
			len(history), m.Config.WindowSize)
	}
	if !finiteAll(history) {
		return 0, errors.New("history contains a non-finite value")
	}

	st1 := NewState(m.Config.HiddenSize)
	st2 := NewState(m.Config.HiddenSize)
	var h []float64
	for _, v := range history {
		h, st1 = m.layer1.Step([]float64{v}, st1)
		h, st2 = m.layer2.Step(h, st2)
	}

	pred := m.by
	for j, w := range m.wy {
		pred += w * h[j]
	}
	return pred, nil
}

// Summary describes a fitted model.
type Summary struct {
	WindowSize   int
	HiddenSize   int
	Epochs       int
	LearningRate float64
	NPairs       int
	FinalLoss    float64
}

// Summary returns a summary of the fitted model, or nil if unfitted.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}
	return &Summary{
		WindowSize:   m.Config.WindowSize,
		HiddenSize:   m.Config.HiddenSize,
		Epochs:       m.Config.Epochs,
		LearningRate: m.Config.LearningRate,
		NPairs:       m.nPairs,
		FinalLoss:    m.finalLoss,
	}
}

func finiteAll(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
