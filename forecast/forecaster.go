package forecast

import (
	"errors"
	"fmt"

	"github.com/sartorproj/golstm/scale"
	"github.com/sartorproj/golstm/timeseries"
)

// Forecaster ties a fitted regressor and its scaler into an end-to-end
// pipeline: scale the tail of the series, roll the model forward, and map
// the predictions back to the original scale.
type Forecaster struct {
	Model      Regressor
	Scaler     *scale.MinMax
	WindowSize int
}

// New creates a forecaster around a fitted regressor and scaler.
func New(model Regressor, scaler *scale.MinMax, windowSize int) (*Forecaster, error) {
	if model == nil {
		return nil, errors.New("model is nil")
	}
	if scaler == nil || !scaler.Fitted() {
		return nil, errors.New("scaler must be fitted")
	}
	if windowSize < 1 {
		return nil, errors.New("window size must be at least 1")
	}
	return &Forecaster{Model: model, Scaler: scaler, WindowSize: windowSize}, nil
}

// Forecast predicts horizon steps past the end of the series. The seed is
// the last WindowSize observations, scaled with the forecaster's scaler;
// the returned values are on the original scale.
func (f *Forecaster) Forecast(series *timeseries.Series, horizon int) ([]float64, error) {
	if series.Len() < f.WindowSize {
		return nil, fmt.Errorf("series has %d observations, need at least %d for the seed window",
			series.Len(), f.WindowSize)
	}
	if !series.IsFinite() {
		return nil, errors.New("series contains a non-finite value")
	}

	tail := series.Values[series.Len()-f.WindowSize:]
	seed, err := f.Scaler.TransformAll(tail)
	if err != nil {
		return nil, err
	}

	scaled, err := Roll(f.Model, seed, horizon)
	if err != nil {
		return nil, err
	}
	return f.Scaler.InverseAll(scaled)
}
