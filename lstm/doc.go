// Package lstm implements a small two-layer LSTM regressor.
//
// The model maps a fixed-length history window of scaled values to the
// next value in the sequence. Training is plain full-batch gradient
// descent with backpropagation through time and per-component gradient
// clipping; no batching or data-loader machinery is involved.
//
// # Basic Usage
//
// Create and fit a model:
//
//	cfg := lstm.DefaultConfig()
//	cfg.WindowSize = 5
//	model, err := lstm.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pairs, _ := window.Make(scaled, cfg.WindowSize)
//	err = model.Fit(pairs, func(epoch int, loss float64) {
//	    fmt.Printf("epoch %d: loss %.6f\n", epoch, loss)
//	})
//
//	next, _ := model.Predict(pairs[0].History)
//
// # Recurrent State
//
// The recurrent state is an explicit value, not a hidden mutable field.
// Cell.Step consumes a State and returns its successor, and Model.Predict
// starts every pass from NewState, so independent windows never share
// state. Determinism follows: a fixed seed and fixed data always produce
// the same weights and the same predictions.
package lstm
