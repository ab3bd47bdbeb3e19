// Package forecast produces multi-step forecasts by autoregressive rollout.
package forecast

import (
	"errors"
	"fmt"
	"math"
)

// Regressor predicts the value following a fixed-length history window.
type Regressor interface {
	Predict(history []float64) (float64, error)
}

// Roll produces horizon successive predictions. At each step the model
// runs on the current window, the output is appended, and the oldest
// element is dropped, so every prediction past the first depends only on
// the seed window and earlier predictions. The seed is copied and never
// mutated.
//
// A non-finite prediction fails immediately with an error naming the step
// rather than letting NaN propagate through the rest of the rollout.
func Roll(model Regressor, seed []float64, horizon int) ([]float64, error) {
	if model == nil {
		return nil, errors.New("model is nil")
	}
	if len(seed) == 0 {
		return nil, errors.New("seed window is empty")
	}
	if horizon < 1 {
		return nil, errors.New("horizon must be at least 1")
	}
	for i, v := range seed {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite seed value at index %d", i)
		}
	}

	current := make([]float64, len(seed))
	copy(current, seed)

	forecasts := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		pred, err := model.Predict(current)
		if err != nil {
			return nil, fmt.Errorf("rollout step %d: %w", step, err)
		}
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, fmt.Errorf("rollout step %d: model produced a non-finite prediction", step)
		}
		forecasts = append(forecasts, pred)

		copy(current, current[1:])
		current[len(current)-1] = pred
	}
	return forecasts, nil
}
