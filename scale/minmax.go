// Package scale provides invertible value scaling for model training.
package scale

import (
	"errors"
	"fmt"
	"math"
)

// MinMax maps values linearly into [0, 1] using bounds recorded by Fit.
// The scaler is immutable after a successful Fit. To avoid leakage, fit
// only on the portion of the data designated for training; fit on the full
// series only when forecasting with no held-out test set.
type MinMax struct {
	min    float64
	max    float64
	fitted bool
}

// NewMinMax creates an unfitted min-max scaler.
func NewMinMax() *MinMax {
	return &MinMax{}
}

// Fit records the min/max bounds of the reference values. It fails on
// empty input, non-finite values, and a constant series (the transform
// would not be invertible).
func (m *MinMax) Fit(values []float64) error {
	if m.fitted {
		return errors.New("scaler is already fitted")
	}
	if len(values) == 0 {
		return errors.New("cannot fit scaler on empty input")
	}

	min, max := values[0], values[0]
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value at index %d", i)
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return errors.New("cannot fit scaler: all values are equal")
	}

	m.min = min
	m.max = max
	m.fitted = true
	return nil
}

// Fitted reports whether the scaler has recorded bounds.
func (m *MinMax) Fitted() bool {
	return m.fitted
}

// Bounds returns the recorded min and max.
func (m *MinMax) Bounds() (min, max float64) {
	return m.min, m.max
}

// Transform maps a value into the fitted range.
func (m *MinMax) Transform(v float64) (float64, error) {
	if !m.fitted {
		return 0, errors.New("scaler must be fitted before transform")
	}
	return (v - m.min) / (m.max - m.min), nil
}

// Inverse maps a scaled value back to the original scale.
func (m *MinMax) Inverse(v float64) (float64, error) {
	if !m.fitted {
		return 0, errors.New("scaler must be fitted before inverse transform")
	}
	return v*(m.max-m.min) + m.min, nil
}

// TransformAll maps a slice of values into the fitted range.
func (m *MinMax) TransformAll(values []float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("scaler must be fitted before transform")
	}
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = (v - m.min) / (m.max - m.min)
	}
	return result, nil
}

// InverseAll maps a slice of scaled values back to the original scale.
func (m *MinMax) InverseAll(values []float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("scaler must be fitted before inverse transform")
	}
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = v*(m.max-m.min) + m.min
	}
	return result, nil
}
