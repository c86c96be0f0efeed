package scytale

// stage is one step of the build pipeline. It receives the rows produced by
// the previous step and returns a fresh row set.
type stage func(rows [][]Cell, d int) [][]Cell

// Build lays text into a grid with diameter columns and applies the
// transforms selected in opts, always in the order rotate, reverse rows,
// reverse columns.
//
// Build never fails: diameters below [MinDiameter] are clamped and empty
// text yields a grid with zero rows. Every row holds diameter cells, so
// callers accepting untrusted diameters must bound them to what they can
// allocate (workbench.Limits does this).
func Build(text string, diameter int, opts Options) *Grid {
	d := NormalizeDiameter(diameter)
	rows := fill([]rune(text), d, opts.pad(), opts.Tag)

	for _, s := range pipeline(opts, d) {
		rows = s(rows, d)
	}
	return &Grid{diameter: d, rows: rows}
}

// pipeline returns the enabled transform stages in their fixed order.
func pipeline(opts Options, d int) []stage {
	var stages []stage
	if k := opts.rotation(d); k != 0 {
		stages = append(stages, rotate(k))
	}
	if opts.ReverseRows {
		stages = append(stages, reverseRows)
	}
	if opts.ReverseCols {
		stages = append(stages, reverseCols)
	}
	return stages
}

// rowCount is ceil(n/d) without the overflow of (n+d-1)/d for large d.
func rowCount(n, d int) int {
	rows := n / d
	if n%d != 0 {
		rows++
	}
	return rows
}

func fill(text []rune, d int, pad rune, tag TagFunc) [][]Cell {
	rows := make([][]Cell, rowCount(len(text), d))
	i := 0
	for r := range rows {
		row := make([]Cell, d)
		for c := range row {
			ch, idx := pad, -1
			if i < len(text) {
				ch, idx = text[i], i
				i++
			}
			row[c] = Cell{Char: ch, Row: r, Col: c}
			if tag != nil {
				row[c].Color = tag(idx, ch)
			}
		}
		rows[r] = row
	}
	return rows
}

// rotate shifts every row right by k: the cell at column (c-k) mod d moves
// to column c.
func rotate(k int) stage {
	return func(rows [][]Cell, d int) [][]Cell {
		out := make([][]Cell, len(rows))
		for r, row := range rows {
			shifted := make([]Cell, d)
			for c := range shifted {
				cell := row[(c-k+d)%d]
				cell.Col = c
				shifted[c] = cell
			}
			out[r] = shifted
		}
		return out
	}
}

func reverseRows(rows [][]Cell, d int) [][]Cell {
	out := make([][]Cell, len(rows))
	for r, row := range rows {
		rev := make([]Cell, d)
		for c := range rev {
			cell := row[d-1-c]
			cell.Col = c
			rev[c] = cell
		}
		out[r] = rev
	}
	return out
}

func reverseCols(rows [][]Cell, d int) [][]Cell {
	n := len(rows)
	out := make([][]Cell, n)
	for r := range out {
		src := rows[n-1-r]
		row := make([]Cell, len(src))
		for c, cell := range src {
			cell.Row = r
			row[c] = cell
		}
		out[r] = row
	}
	return out
}
