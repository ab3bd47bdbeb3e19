// Package forecast produces multi-step forecasts and measures their accuracy.
//
// The core operation is the autoregressive rollout: the model predicts one
// step, the prediction joins the history window, the oldest observation
// drops out, and the process repeats for the full horizon:
//
//	forecasts, err := forecast.Roll(model, seedWindow, 12)
//
// Every prediction after the first depends only on the seed window and the
// model's own earlier outputs; ground truth is never consulted past step 0.
// A non-finite prediction aborts the rollout with an explicit error.
//
// Forecaster wraps the rollout with the scaling round trip, and Accuracy
// computes RMSE, MAE, and MAPE against a held-out range.
package forecast
