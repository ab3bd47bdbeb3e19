// Package golstm provides LSTM-based forecasting for short univariate time series.
//
// GoLSTM is a walkthrough-sized Go package for fitting a small two-layer
// LSTM regressor to a daily time series and producing multi-step forecasts
// by autoregressive rollout. It targets the common tutorial setting: a few
// dozen observations, min-max scaling, a sliding history window, and a
// fixed number of full-batch training epochs.
//
// # Quick Start
//
// Fit a model and forecast:
//
//	series, _ := timeseries.LoadCSVWide("confirmed.csv", nil)
//	scaler := scale.NewMinMax()
//	scaler.Fit(series.Values)
//	scaled, _ := scaler.TransformAll(series.Values)
//
//	cfg := lstm.DefaultConfig()
//	pairs, _ := window.Make(scaled, cfg.WindowSize)
//	model, _ := lstm.New(cfg)
//	model.Fit(pairs, nil)
//
//	fc, _ := forecast.New(model, scaler, cfg.WindowSize)
//	forecasts, _ := fc.Forecast(series, 12)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Series data structure and CSV loading
//   - scale: Invertible min-max scaling
//   - window: Sliding input/label pair construction
//   - lstm: The two-layer LSTM regressor
//   - forecast: Autoregressive rollout and accuracy metrics
//
// The cmd/golstm command ties the packages into a top-to-bottom
// walkthrough with a YAML config and table or JSON output.
package golstm
