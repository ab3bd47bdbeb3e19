package lstm

import (
	"math"
	"math/rand"
)

// Gate indices within a cell's weight arrays.
const (
	gateForget = iota
	gateInput
	gateCand
	gateOutput
	numGates
)

// Cell is a single LSTM layer. Step is pure with respect to the receiver:
// the only mutable quantity is the State passed in and returned, so one
// fitted cell can serve any number of independent sequences.
type Cell struct {
	inSize     int
	hiddenSize int

	wx [numGates][][]float64 // gate weights on the input, hidden x in
	wh [numGates][][]float64 // gate weights on the previous hidden, hidden x hidden
	b  [numGates][]float64
}

// newCell creates a cell with normally distributed weights scaled by
// 1/sqrt(hidden). The forget gate bias starts at 1 so early training does
// not wipe the cell state.
func newCell(inSize, hiddenSize int, rng *rand.Rand) *Cell {
	c := &Cell{inSize: inSize, hiddenSize: hiddenSize}
	std := 1.0 / math.Sqrt(float64(hiddenSize))
	for g := 0; g < numGates; g++ {
		c.wx[g] = randMatrix(hiddenSize, inSize, std, rng)
		c.wh[g] = randMatrix(hiddenSize, hiddenSize, std, rng)
		c.b[g] = make([]float64, hiddenSize)
	}
	for j := range c.b[gateForget] {
		c.b[gateForget][j] = 1
	}
	return c
}

// InputSize returns the cell's input width.
func (c *Cell) InputSize() int {
	return c.inSize
}

// HiddenSize returns the cell's hidden width.
func (c *Cell) HiddenSize() int {
	return c.hiddenSize
}

// Step runs one timestep: it consumes the previous state and returns the
// hidden output along with the successor state.
func (c *Cell) Step(x []float64, st State) ([]float64, State) {
	cache := c.forward(x, st)
	return cache.h, State{Hidden: cache.h, Cell: cache.c}
}

// stepCache records every intermediate of one timestep, enabling
// backpropagation through time.
type stepCache struct {
	x     []float64
	hPrev []float64
	cPrev []float64

	f, i, g, o []float64 // post-activation gate values
	c          []float64 // cell state after the update
	tanhC      []float64
	h          []float64
}

func (c *Cell) forward(x []float64, st State) *stepCache {
	n := c.hiddenSize
	cache := &stepCache{
		x:     x,
		hPrev: st.Hidden,
		cPrev: st.Cell,
		f:     make([]float64, n),
		i:     make([]float64, n),
		g:     make([]float64, n),
		o:     make([]float64, n),
		c:     make([]float64, n),
		tanhC: make([]float64, n),
		h:     make([]float64, n),
	}

	for j := 0; j < n; j++ {
		cache.f[j] = sigmoid(c.preact(gateForget, j, x, st.Hidden))
		cache.i[j] = sigmoid(c.preact(gateInput, j, x, st.Hidden))
		cache.g[j] = math.Tanh(c.preact(gateCand, j, x, st.Hidden))
		cache.o[j] = sigmoid(c.preact(gateOutput, j, x, st.Hidden))

		cache.c[j] = cache.f[j]*st.Cell[j] + cache.i[j]*cache.g[j]
		cache.tanhC[j] = math.Tanh(cache.c[j])
		cache.h[j] = cache.o[j] * cache.tanhC[j]
	}
	return cache
}

// preact computes the pre-activation of one gate unit.
func (c *Cell) preact(gate, j int, x, hPrev []float64) float64 {
	sum := c.b[gate][j]
	for k := 0; k < c.inSize; k++ {
		sum += c.wx[gate][j][k] * x[k]
	}
	for k := 0; k < c.hiddenSize; k++ {
		sum += c.wh[gate][j][k] * hPrev[k]
	}
	return sum
}

// cellGrads accumulates weight gradients for one cell across a batch.
type cellGrads struct {
	wx [numGates][][]float64
	wh [numGates][][]float64
	b  [numGates][]float64
}

func newCellGrads(inSize, hiddenSize int) *cellGrads {
	g := &cellGrads{}
	for i := 0; i < numGates; i++ {
		g.wx[i] = zeroMatrix(hiddenSize, inSize)
		g.wh[i] = zeroMatrix(hiddenSize, hiddenSize)
		g.b[i] = make([]float64, hiddenSize)
	}
	return g
}

// backward propagates gradients through one cached timestep. dh and dc are
// the gradients flowing into the hidden output and the successor cell
// state. It accumulates weight gradients into grads and returns the
// gradients for the input and the predecessor state.
func (c *Cell) backward(cache *stepCache, dh, dc []float64, grads *cellGrads) (dx, dhPrev, dcPrev []float64) {
	n := c.hiddenSize
	dx = make([]float64, c.inSize)
	dhPrev = make([]float64, n)
	dcPrev = make([]float64, n)

	var dPre [numGates]float64
	for j := 0; j < n; j++ {
		dCell := dh[j]*cache.o[j]*(1-cache.tanhC[j]*cache.tanhC[j]) + dc[j]

		dPre[gateOutput] = dh[j] * cache.tanhC[j] * cache.o[j] * (1 - cache.o[j])
		dPre[gateForget] = dCell * cache.cPrev[j] * cache.f[j] * (1 - cache.f[j])
		dPre[gateInput] = dCell * cache.g[j] * cache.i[j] * (1 - cache.i[j])
		dPre[gateCand] = dCell * cache.i[j] * (1 - cache.g[j]*cache.g[j])

		dcPrev[j] = dCell * cache.f[j]

		for g := 0; g < numGates; g++ {
			for k := 0; k < c.inSize; k++ {
				grads.wx[g][j][k] += dPre[g] * cache.x[k]
				dx[k] += c.wx[g][j][k] * dPre[g]
			}
			for k := 0; k < n; k++ {
				grads.wh[g][j][k] += dPre[g] * cache.hPrev[k]
				dhPrev[k] += c.wh[g][j][k] * dPre[g]
			}
			grads.b[g][j] += dPre[g]
		}
	}
	return dx, dhPrev, dcPrev
}

// applyGrads performs one clipped gradient-descent update.
func (c *Cell) applyGrads(grads *cellGrads, lr float64, scale float64) {
	for g := 0; g < numGates; g++ {
		for j := 0; j < c.hiddenSize; j++ {
			for k := 0; k < c.inSize; k++ {
				c.wx[g][j][k] -= lr * clipGrad(grads.wx[g][j][k]*scale)
			}
			for k := 0; k < c.hiddenSize; k++ {
				c.wh[g][j][k] -= lr * clipGrad(grads.wh[g][j][k]*scale)
			}
			c.b[g][j] -= lr * clipGrad(grads.b[g][j]*scale)
		}
	}
}

// gradClip bounds each gradient component so a single bad batch cannot
// blow up the weights.
const gradClip = 5.0

func clipGrad(v float64) float64 {
	return math.Max(-gradClip, math.Min(gradClip, v))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func randMatrix(rows, cols int, std float64, rng *rand.Rand) [][]float64 {
	m := make([][]float64, rows)
	for j := range m {
		row := make([]float64, cols)
		for k := range row {
			row[k] = rng.NormFloat64() * std
		}
		m[j] = row
	}
	return m
}

func zeroMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for j := range m {
		m[j] = make([]float64, cols)
	}
	return m
}
