// Package window builds fixed-length input/label pairs from a flat sequence.
package window

import "errors"

// Pair holds one training example: a fixed-length history window and the
// value that immediately follows it.
type Pair struct {
	History []float64
	Label   float64
}

// Make slides a window of the given length over values, one step at a
// time, producing len(values)-length-1 pairs: pair i has history
// values[i:i+length) and label values[i+length]. Histories are copies, so
// pairs stay valid if the caller mutates the input.
//
// If the sequence is too short to produce any pair (len(values) <=
// length+1) the result is empty but non-nil; the caller must handle the
// degenerate case. A non-positive length is an error.
func Make(values []float64, length int) ([]Pair, error) {
	if length < 1 {
		return nil, errors.New("window length must be at least 1")
	}

	n := len(values) - length - 1
	if n <= 0 {
		return []Pair{}, nil
	}

	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		history := make([]float64, length)
		copy(history, values[i:i+length])
		pairs[i] = Pair{
			History: history,
			Label:   values[i+length],
		}
	}
	return pairs, nil
}
