package scytale

const (
	// MinDiameter is the smallest column count a grid can have.
	MinDiameter = 2

	// DefaultPadChar fills the unused cells of the final row.
	DefaultPadChar = ' '
)

// TagFunc assigns the cosmetic Color of a cell when it is first placed.
// index is the position of ch in the source text, or -1 for pad cells.
type TagFunc func(index int, ch rune) string

// Options configures [Build]. The zero value applies no transform and pads
// with a space.
type Options struct {
	// Offset rotates every row to the right. Any integer is accepted;
	// negative values rotate left.
	Offset int

	// ReverseRows mirrors each row left to right after rotation.
	ReverseRows bool

	// ReverseCols reverses the order of rows (vertical mirror).
	ReverseCols bool

	// PadChar fills the final short row. Zero means [DefaultPadChar].
	PadChar rune

	// Tag, when set, labels each cell at fill time. Tags travel with their
	// cells through every later stage.
	Tag TagFunc
}

func (o Options) pad() rune {
	if o.PadChar == 0 {
		return DefaultPadChar
	}
	return o.PadChar
}

// rotation returns the offset normalised into [0, d).
func (o Options) rotation(d int) int {
	return ((o.Offset % d) + d) % d
}
