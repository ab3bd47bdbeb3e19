package lstm

// State holds the recurrent state of one LSTM layer: the hidden vector
// exposed to the next layer and the internal cell vector. A forward pass
// consumes a State and returns the successor; starting a pass from
// NewState is the explicit reset that makes independent passes independent.
type State struct {
	Hidden []float64
	Cell   []float64
}

// NewState returns a zero state for a layer with the given hidden size.
func NewState(hiddenSize int) State {
	return State{
		Hidden: make([]float64, hiddenSize),
		Cell:   make([]float64, hiddenSize),
	}
}

// Copy returns a deep copy of the state.
func (s State) Copy() State {
	hidden := make([]float64, len(s.Hidden))
	copy(hidden, s.Hidden)
	cell := make([]float64, len(s.Cell))
	copy(cell, s.Cell)
	return State{Hidden: hidden, Cell: cell}
}
