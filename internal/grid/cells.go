package grid

import (
	"math/rand/v2"
	"strings"
)

const (
	// Size is the number of cells in a roll.
	Size = 100
	// Columns is the width of the grid when it is laid out on screen.
	Columns = 10
	// Rows is the height of the grid when it is laid out on screen.
	Rows = Size / Columns
)

// activeThreshold splits a uniform draw in [0,1) into inactive and active.
const activeThreshold = 0.5

// Cells is one generation of the grid. The index of a value is the cell's
// identity (its original index); the array type pins the length to Size.
type Cells [Size]bool

// Source is the random source a cell set is drawn from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a uniform pseudo-random number in [0,1).
	Float64() float64
}

// NewSource returns a PCG-backed source. A zero seed picks a random one, so
// only explicit seeds give reproducible rolls.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate draws a fresh cell set. Each cell is active iff its draw exceeds
// one half.
func Generate(src Source) Cells {
	var c Cells
	for i := range c {
		c[i] = src.Float64() > activeThreshold
	}
	return c
}

// Count returns the number of active cells.
func Count(c Cells) int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// String renders the cells row by row, '●' for active and '·' for inactive.
func (c Cells) String() string {
	var b strings.Builder
	b.Grow(Size*4 + Rows)
	for i, v := range c {
		if i > 0 && i%Columns == 0 {
			b.WriteByte('\n')
		}
		if v {
			b.WriteRune('●')
		} else {
			b.WriteRune('·')
		}
	}
	return b.String()
}
