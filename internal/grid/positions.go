package grid

// Positions maps each original cell index to its slot in the sorted
// arrangement: inactive cells first, then active cells, each group keeping
// its original relative order.
type Positions [Size]int

// SortPositions computes the sorted arrangement of c as a stable two-bucket
// partition. Inactive cells take slots 0..k-1 and active cells k..Size-1,
// where k is the number of inactive cells.
func SortPositions(c Cells) Positions {
	var p Positions
	next := 0
	for i, v := range c {
		if !v {
			p[i] = next
			next++
		}
	}
	for i, v := range c {
		if v {
			p[i] = next
			next++
		}
	}
	return p
}

// Of returns the sorted slot of the cell at original index i.
// The mapping is total, so an index outside [0, Size) is a caller bug and
// panics rather than falling back to i.
func (p Positions) Of(i int) int {
	return p[i]
}

// Layout inverts the mapping: element s is the original index of the cell
// that occupies sorted slot s. Renderers walk the layout slot by slot.
func (p Positions) Layout() [Size]int {
	var l [Size]int
	for i, s := range p {
		l[s] = i
	}
	return l
}

// Valid reports whether p is a bijection on [0, Size).
func (p Positions) Valid() bool {
	var seen [Size]bool
	for _, s := range p {
		if s < 0 || s >= Size || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// Arrange returns the cells in their sorted order, slot by slot.
func Arrange(c Cells) Cells {
	var out Cells
	for slot, i := range SortPositions(c).Layout() {
		out[slot] = c[i]
	}
	return out
}
