// Package grid holds the pure building blocks of a roll: drawing a fresh
// 10×10 cell set, counting its active cells, and computing where every cell
// lands when inactive cells are grouped before active ones.
//
// Nothing in this package keeps state between calls; the roll state machine
// owns the current cell set and calls into here on every tick.
package grid
