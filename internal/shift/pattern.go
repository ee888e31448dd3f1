package shift

// Offset is a pixel displacement from the panel's base position.
type Offset struct {
	DX int
	DY int
}

// Pattern cycles through the nine-position shift ring: center first, then
// the eight compass offsets at the configured magnitude, clockwise
// starting at "right".
type Pattern struct {
	offsets [9]Offset
	cursor  int
}

// NewPattern builds the ring for the given shift magnitude.
func NewPattern(amount int) *Pattern {
	a := amount
	return &Pattern{offsets: [9]Offset{
		{0, 0},
		{a, 0},
		{a, a},
		{0, a},
		{-a, a},
		{-a, 0},
		{-a, -a},
		{0, -a},
		{a, -a},
	}}
}

// Next returns the current ring entry and advances the cursor, wrapping
// back to center after the last position.
func (p *Pattern) Next() Offset {
	off := p.offsets[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.offsets)
	return off
}

// Reset rewinds the ring to the center entry.
func (p *Pattern) Reset() {
	p.cursor = 0
}
