package scytale

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Cell is one position of a grid.
//
// Row and Col always match the cell's location in the grid it was read from.
// Color is an opaque tag for presentation layers; the engine moves it along
// with the cell and never looks at it.
type Cell struct {
	Char  rune
	Row   int
	Col   int
	Color string
}

type cellJSON struct {
	Char  string `json:"char"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Color string `json:"color,omitempty"`
}

// MarshalJSON encodes the cell with its character as a one-rune string.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(cellJSON{Char: string(c.Char), Row: c.Row, Col: c.Col, Color: c.Color})
}

// UnmarshalJSON decodes a cell written by MarshalJSON.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v cellJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r, size := utf8.DecodeRuneInString(v.Char)
	if size == 0 || size != len(v.Char) {
		return fmt.Errorf("scytale: cell char must be exactly one character, got %q", v.Char)
	}
	*c = Cell{Char: r, Row: v.Row, Col: v.Col, Color: v.Color}
	return nil
}

// Grid is an immutable rectangular matrix of cells produced by [Build].
//
// Every row holds exactly Diameter() cells. A grid built from empty text has
// zero rows but keeps its diameter. The zero value is an empty grid with
// diameter zero; nil grids are accepted by every function in this package.
type Grid struct {
	diameter int
	rows     [][]Cell
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// Diameter returns the column count.
func (g *Grid) Diameter() int {
	if g == nil {
		return 0
	}
	return g.diameter
}

// Len returns the number of cells, padding included.
func (g *Grid) Len() int {
	return g.Rows() * g.Diameter()
}

// Empty reports whether the grid has no rows.
func (g *Grid) Empty() bool {
	return g.Rows() == 0
}

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.Diameter()
}

// Cell returns the cell at (row, col). It panics if the position is out of
// bounds, like indexing a slice.
func (g *Grid) Cell(row, col int) Cell {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("scytale: cell (%d,%d) out of range for %dx%d grid", row, col, g.Rows(), g.Diameter()))
	}
	return g.rows[row][col]
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) []Cell {
	if r < 0 || r >= g.Rows() {
		panic(fmt.Sprintf("scytale: row %d out of range for %d rows", r, g.Rows()))
	}
	return append([]Cell(nil), g.rows[r]...)
}

// Cells returns a deep copy of all rows.
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.Rows())
	for r := range out {
		out[r] = g.Row(r)
	}
	return out
}

// Column returns a copy of column c, top to bottom.
func (g *Grid) Column(c int) []Cell {
	if c < 0 || c >= g.Diameter() {
		panic(fmt.Sprintf("scytale: column %d out of range for diameter %d", c, g.Diameter()))
	}
	out := make([]Cell, g.Rows())
	for r := range out {
		out[r] = g.rows[r][c]
	}
	return out
}

// String returns the grid read by rows without trimming.
func (g *Grid) String() string {
	return ReadByRows(g, false)
}

type gridJSON struct {
	Diameter int      `json:"diameter"`
	Rows     [][]Cell `json:"rows"`
}

// MarshalJSON encodes the grid as {"diameter": D, "rows": [[cell...]...]}.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := g.Cells()
	return json.Marshal(gridJSON{Diameter: g.Diameter(), Rows: rows})
}

// UnmarshalJSON decodes a grid and checks that it is rectangular and that
// every cell carries its own position.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var v gridJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := validate(v.Diameter, v.Rows); err != nil {
		return err
	}
	*g = Grid{diameter: v.Diameter, rows: v.Rows}
	return nil
}

func validate(diameter int, rows [][]Cell) error {
	if diameter < MinDiameter {
		return fmt.Errorf("%w: %d", ErrInvalidDiameter, diameter)
	}
	for r, row := range rows {
		if len(row) != diameter {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), diameter)
		}
		for c, cell := range row {
			if cell.Row != r || cell.Col != c {
				return fmt.Errorf("%w: cell at (%d,%d) claims (%d,%d)", ErrStalePosition, r, c, cell.Row, cell.Col)
			}
		}
	}
	return nil
}
