package scytale

import (
	"strings"
)

// ReadByRows concatenates each row left to right and joins rows with a
// newline. When trimTrailingWhitespace is set, trailing whitespace is removed
// from the end of the whole result, not from each line. Whitespace is the
// ECMAScript set (see [IsTrimSpace]), so U+FEFF is trimmed and U+0085 is
// kept.
func ReadByRows(g *Grid, trimTrailingWhitespace bool) string {
	if g.Empty() {
		return ""
	}
	var b strings.Builder
	b.Grow(g.Len() + g.Rows())
	for r, row := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteRune(cell.Char)
		}
	}
	return finish(b.String(), trimTrailingWhitespace)
}

// ReadByColumns reads each column top to bottom. The column strings are
// concatenated directly when joinWithoutLineBreaks is set, or joined with
// newlines otherwise. Trimming behaves as in [ReadByRows].
func ReadByColumns(g *Grid, joinWithoutLineBreaks, trimTrailingWhitespace bool) string {
	if g.Empty() {
		return ""
	}
	var b strings.Builder
	b.Grow(g.Len() + g.Diameter())
	for c := 0; c < g.diameter; c++ {
		if c > 0 && !joinWithoutLineBreaks {
			b.WriteByte('\n')
		}
		for _, row := range g.rows {
			b.WriteRune(row[c].Char)
		}
	}
	return finish(b.String(), trimTrailingWhitespace)
}

func finish(s string, trim bool) string {
	if trim {
		return strings.TrimRightFunc(s, IsTrimSpace)
	}
	return s
}

// IsTrimSpace reports whether r is whitespace for readout trimming: the
// ECMAScript WhiteSpace and LineTerminator set. It differs from
// unicode.IsSpace in including U+FEFF and excluding U+0085.
func IsTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// ReadOptions selects the flags of both readouts.
type ReadOptions struct {
	// LineBreaks joins column strings with newlines; by default they are
	// concatenated.
	LineBreaks bool

	// Trim strips trailing whitespace from both results.
	Trim bool
}

// Readout holds both flattenings of a grid.
type Readout struct {
	ByRows    string `json:"by_rows"`
	ByColumns string `json:"by_columns"`
}

// Read returns both readouts of g.
func Read(g *Grid, opts ReadOptions) Readout {
	return Readout{
		ByRows:    ReadByRows(g, opts.Trim),
		ByColumns: ReadByColumns(g, !opts.LineBreaks, opts.Trim),
	}
}
