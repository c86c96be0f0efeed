package scytale_test

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kryptos/pkg/scytale"
)

// chars returns the characters of g row by row.
func chars(g *scytale.Grid) [][]string {
	out := make([][]string, g.Rows())
	for r, row := range g.Cells() {
		for _, c := range row {
			out[r] = append(out[r], string(c.Char))
		}
	}
	return out
}

// requireConsistent checks rectangularity and that every cell carries its
// own position.
func requireConsistent(t *testing.T, g *scytale.Grid) {
	t.Helper()
	for r, row := range g.Cells() {
		require.Len(t, row, g.Diameter(), "row %d", r)
		for c, cell := range row {
			require.Equal(t, r, cell.Row, "row stamp at (%d,%d)", r, c)
			require.Equal(t, c, cell.Col, "col stamp at (%d,%d)", r, c)
		}
	}
}

func TestBuildScenarios(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		diameter int
		opts     scytale.Options
		want     [][]string
		byRows   string
	}{
		{
			name:     "plain fill pads final row",
			text:     "ABCDEFG",
			diameter: 3,
			want:     [][]string{{"A", "B", "C"}, {"D", "E", "F"}, {"G", " ", " "}},
			byRows:   "ABC\nDEF\nG  ",
		},
		{
			name:     "offset one rotates every row right",
			text:     "ABCDEFG",
			diameter: 3,
			opts:     scytale.Options{Offset: 1},
			want:     [][]string{{"C", "A", "B"}, {"F", "D", "E"}, {" ", "G", " "}},
			byRows:   "CAB\nFDE\n G ",
		},
		{
			name:     "reverse cols flips row order",
			text:     "ABCDEF",
			diameter: 2,
			opts:     scytale.Options{ReverseCols: true},
			want:     [][]string{{"E", "F"}, {"C", "D"}, {"A", "B"}},
			byRows:   "EF\nCD\nAB",
		},
		{
			name:     "reverse rows mirrors each row",
			text:     "ABCDEF",
			diameter: 3,
			opts:     scytale.Options{ReverseRows: true},
			want:     [][]string{{"C", "B", "A"}, {"F", "E", "D"}},
			byRows:   "CBA\nFED",
		},
		{
			name:     "negative offset rotates left",
			text:     "ABCD",
			diameter: 4,
			opts:     scytale.Options{Offset: -1},
			want:     [][]string{{"B", "C", "D", "A"}},
			byRows:   "BCDA",
		},
		{
			name:     "offset multiple of diameter is identity",
			text:     "ABCDEF",
			diameter: 3,
			opts:     scytale.Options{Offset: 9},
			want:     [][]string{{"A", "B", "C"}, {"D", "E", "F"}},
			byRows:   "ABC\nDEF",
		},
		{
			name:     "custom pad char",
			text:     "ABCDE",
			diameter: 3,
			opts:     scytale.Options{PadChar: '_'},
			want:     [][]string{{"A", "B", "C"}, {"D", "E", "_"}},
			byRows:   "ABC\nDE_",
		},
		{
			name:     "diameter below minimum clamps to two",
			text:     "ABC",
			diameter: -5,
			want:     [][]string{{"A", "B"}, {"C", " "}},
			byRows:   "AB\nC ",
		},
		{
			name:     "all stages compose in fixed order",
			text:     "ABCDEFG",
			diameter: 3,
			opts:     scytale.Options{Offset: 1, ReverseRows: true, ReverseCols: true},
			want:     [][]string{{" ", "G", " "}, {"E", "D", "F"}, {"B", "A", "C"}},
			byRows:   " G \nEDF\nBAC",
		},
		{
			name:     "whitespace and punctuation pass through",
			text:     "a b,\nc",
			diameter: 3,
			want:     [][]string{{"a", " ", "b"}, {",", "\n", "c"}},
			byRows:   "a b\n,\nc",
		},
		{
			name:     "multibyte characters occupy one cell",
			text:     "ÄÖÜß",
			diameter: 2,
			want:     [][]string{{"Ä", "Ö"}, {"Ü", "ß"}},
			byRows:   "ÄÖ\nÜß",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := scytale.Build(tt.text, tt.diameter, tt.opts)
			requireConsistent(t, g)
			if diff := cmp.Diff(tt.want, chars(g)); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.byRows, scytale.ReadByRows(g, false))
		})
	}
}

func TestBuildEmptyText(t *testing.T) {
	g := scytale.Build("", 4, scytale.Options{Offset: 3, ReverseRows: true, ReverseCols: true})

	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 4, g.Diameter())
	assert.True(t, g.Empty())
	assert.Equal(t, "", scytale.ReadByRows(g, false))
	assert.Equal(t, "", scytale.ReadByColumns(g, true, false))
	assert.Equal(t, "", scytale.ReadByColumns(g, false, true))
}

func TestRectangularity(t *testing.T) {
	texts := []string{"", "A", "AB", "ABCDEFGHIJK", strings.Repeat("KRYPTOS", 13)}
	for _, text := range texts {
		for d := -1; d <= 12; d++ {
			for _, offset := range []int{0, 1, -3, 17} {
				opts := scytale.Options{Offset: offset, ReverseRows: d%2 == 0, ReverseCols: offset < 0}
				g := scytale.Build(text, d, opts)

				wantD := max(d, scytale.MinDiameter)
				wantRows := (len(text) + wantD - 1) / wantD
				require.Equal(t, wantD, g.Diameter())
				require.Equal(t, wantRows, g.Rows(), "text=%q d=%d", text, d)
				requireConsistent(t, g)
			}
		}
	}
}

func TestRoundTripByRows(t *testing.T) {
	text := "WEAREDISCOVEREDFLEEATONCE"
	for d := 2; d <= 9; d++ {
		g := scytale.Build(text, d, scytale.Options{})

		var lines []string
		for i := 0; i < len(text); i += d {
			line := text[i:min(i+d, len(text))]
			lines = append(lines, line+strings.Repeat(" ", d-len(line)))
		}
		assert.Equal(t, strings.Join(lines, "\n"), scytale.ReadByRows(g, false), "d=%d", d)
		assert.Equal(t, strings.TrimRight(strings.Join(lines, "\n"), " "), scytale.ReadByRows(g, true), "d=%d", d)
	}
}

func TestRotationIsBijection(t *testing.T) {
	text := "BETWEENSUBTLESHADINGANDTHEABSENCEOFLIGHT"
	for d := 2; d <= 8; d++ {
		base := scytale.Build(text, d, scytale.Options{})
		for k := 0; k < d; k++ {
			rotated := scytale.Build(text, d, scytale.Options{Offset: k})
			restored := rotateBack(t, rotated, d-k)
			assert.Equal(t, chars(base), restored, "d=%d k=%d", d, k)
		}
	}
}

// rotateBack rebuilds each row of g as its own grid and rotates it by k.
func rotateBack(t *testing.T, g *scytale.Grid, k int) [][]string {
	t.Helper()
	out := make([][]string, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		var b strings.Builder
		for _, c := range g.Row(r) {
			b.WriteRune(c.Char)
		}
		row := scytale.Build(b.String(), g.Diameter(), scytale.Options{Offset: k})
		out[r] = chars(row)[0]
	}
	return out
}

func TestReflectionIsSelfInverse(t *testing.T) {
	text := "ITWASTOTALLYINVISIBLE"
	d := 4

	rows := scytale.Build(text, d, scytale.Options{ReverseRows: true})
	base := chars(scytale.Build(text, d, scytale.Options{}))

	mirrored := chars(rows)
	for r := range mirrored {
		for i, j := 0, len(mirrored[r])-1; i < j; i, j = i+1, j-1 {
			mirrored[r][i], mirrored[r][j] = mirrored[r][j], mirrored[r][i]
		}
	}
	assert.Equal(t, base, mirrored)

	flipped := chars(scytale.Build(text, d, scytale.Options{ReverseCols: true}))
	for i, j := 0, len(flipped)-1; i < j; i, j = i+1, j-1 {
		flipped[i], flipped[j] = flipped[j], flipped[i]
	}
	assert.Equal(t, base, flipped)
}

func TestRotationAndReflectionDoNotCommute(t *testing.T) {
	g := scytale.Build("ABCD", 4, scytale.Options{Offset: 1, ReverseRows: true})
	// rotate first: DABC, then mirror: CBAD
	assert.Equal(t, "CBAD", scytale.ReadByRows(g, false))

	// mirror first would give DCBA then ADCB
	assert.NotEqual(t, "ADCB", scytale.ReadByRows(g, false))
}

func TestReadByColumns(t *testing.T) {
	g := scytale.Build("ABCDEFG", 3, scytale.Options{})

	tests := []struct {
		name string
		join bool
		trim bool
		want string
	}{
		{"joined", true, false, "ADGBE CF "},
		{"joined trimmed", true, true, "ADGBE CF"},
		{"line broken", false, false, "ADG\nBE \nCF "},
		{"line broken trimmed", false, true, "ADG\nBE \nCF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scytale.ReadByColumns(g, tt.join, tt.trim))
		})
	}
}

func TestReadByColumnsLength(t *testing.T) {
	for d := 2; d <= 10; d++ {
		g := scytale.Build("THEYUSEDTHEEARTHSMAGNETICFIELD", d, scytale.Options{Offset: d / 2})
		assert.Len(t, []rune(scytale.ReadByColumns(g, true, false)), g.Rows()*g.Diameter(), "d=%d", d)
	}
}

func TestTrimOnlyStripsEndOfResult(t *testing.T) {
	g := scytale.Build("AB C D", 2, scytale.Options{PadChar: '.'})
	// rows: "AB", " C", " D"
	assert.Equal(t, "AB\n C\n D", scytale.ReadByRows(g, true))

	g = scytale.Build("A B  ", 2, scytale.Options{})
	assert.Equal(t, "A \nB", scytale.ReadByRows(g, true))
	assert.Equal(t, "AB", scytale.ReadByColumns(g, true, true))
}

func TestTrimUsesECMAScriptWhitespace(t *testing.T) {
	g := scytale.Build("AB\ufeff\u3000", 4, scytale.Options{})
	assert.Equal(t, "AB", scytale.ReadByRows(g, true))

	g = scytale.Build("AB\u0085", 3, scytale.Options{})
	assert.Equal(t, "AB\u0085", scytale.ReadByRows(g, true))

	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true}, {'\t', true}, {'\v', true}, {'\u00a0', true}, {'\u2000', true},
		{'\u200a', true}, {'\ufeff', true}, {'\u0085', false}, {'\u200b', false}, {'A', false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scytale.IsTrimSpace(tt.r), "IsTrimSpace(%U)", tt.r)
	}
}

func TestNilGridReadouts(t *testing.T) {
	var g *scytale.Grid
	assert.Equal(t, "", scytale.ReadByRows(g, false))
	assert.Equal(t, "", scytale.ReadByColumns(g, false, false))
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 0, g.Diameter())
}

func TestTagsTravelWithCells(t *testing.T) {
	tag := func(i int, ch rune) string {
		if i < 0 {
			return "pad"
		}
		return fmt.Sprintf("src%d", i)
	}
	g := scytale.Build("ABCDEFG", 3, scytale.Options{Offset: 1, ReverseCols: true, Tag: tag})

	for _, row := range g.Cells() {
		for _, cell := range row {
			if cell.Char == ' ' {
				assert.Equal(t, "pad", cell.Color)
				continue
			}
			assert.Equal(t, fmt.Sprintf("src%d", cell.Char-'A'), cell.Color)
		}
	}
}

func TestGridIsImmutable(t *testing.T) {
	g := scytale.Build("ABCD", 2, scytale.Options{})

	row := g.Row(0)
	row[0].Char = 'Z'
	cells := g.Cells()
	cells[1][1].Char = 'Z'
	col := g.Column(0)
	col[1].Char = 'Z'

	assert.Equal(t, "AB\nCD", scytale.ReadByRows(g, false))
}

func TestGridAccessors(t *testing.T) {
	g := scytale.Build("ABCDE", 2, scytale.Options{})

	assert.Equal(t, 6, g.Len())
	assert.Equal(t, 'D', g.Cell(1, 1).Char)
	assert.True(t, g.InBounds(2, 1))
	assert.False(t, g.InBounds(3, 0))
	assert.False(t, g.InBounds(0, -1))
	assert.Equal(t, "ACE", string([]rune{g.Column(0)[0].Char, g.Column(0)[1].Char, g.Column(0)[2].Char}))
	assert.Equal(t, "AB\nCD\nE ", g.String())
	assert.Panics(t, func() { g.Cell(5, 0) })
	assert.Panics(t, func() { g.Row(-1) })
	assert.Panics(t, func() { g.Column(2) })
}

func TestGridJSON(t *testing.T) {
	g := scytale.Build("ABC", 2, scytale.Options{Tag: func(i int, _ rune) string {
		if i == 0 {
			return "red"
		}
		return ""
	}})

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"diameter": 2,
		"rows": [
			[{"char":"A","row":0,"col":0,"color":"red"},{"char":"B","row":0,"col":1}],
			[{"char":"C","row":1,"col":0},{"char":" ","row":1,"col":1}]
		]
	}`, string(data))

	var decoded scytale.Grid
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, g.Cells(), decoded.Cells())
	assert.Equal(t, 2, decoded.Diameter())
}

func TestGridJSONRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"small diameter", `{"diameter":1,"rows":[]}`, scytale.ErrInvalidDiameter},
		{"jagged", `{"diameter":2,"rows":[[{"char":"A","row":0,"col":0}]]}`, scytale.ErrNonRectangular},
		{"stale", `{"diameter":2,"rows":[[{"char":"A","row":0,"col":1},{"char":"B","row":0,"col":0}]]}`, scytale.ErrStalePosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g scytale.Grid
			err := json.Unmarshal([]byte(tt.data), &g)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	var c scytale.Cell
	assert.Error(t, json.Unmarshal([]byte(`{"char":"AB","row":0,"col":0}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"char":"","row":0,"col":0}`), &c))
}

func TestDiameterFromFloat(t *testing.T) {
	tests := []struct {
		in      float64
		want    int
		wantErr bool
	}{
		{7, 7, false},
		{7.9, 7, false},
		{2, 2, false},
		{1.99, 2, false},
		{0, 2, false},
		{-40, 2, false},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
		{math.Inf(-1), 0, true},
		{1e12, 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			got, err := scytale.DiameterFromFloat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, scytale.ErrInvalidDiameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDiameter(t *testing.T) {
	d, err := scytale.ParseDiameter(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, d)

	d, err = scytale.ParseDiameter("1")
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	for _, s := range []string{"", "seven", "NaN", "Inf", "-Inf"} {
		_, err := scytale.ParseDiameter(s)
		assert.ErrorIs(t, err, scytale.ErrInvalidDiameter, "input %q", s)
	}
}

func TestRead(t *testing.T) {
	g := scytale.Build("ABCDEFG", 3, scytale.Options{})
	assert.Equal(t, scytale.Readout{ByRows: "ABC\nDEF\nG  ", ByColumns: "ADGBE CF "}, scytale.Read(g, scytale.ReadOptions{}))
	assert.Equal(t, scytale.Readout{ByRows: "ABC\nDEF\nG", ByColumns: "ADG\nBE \nCF"}, scytale.Read(g, scytale.ReadOptions{LineBreaks: true, Trim: true}))
}

func TestBuildConcurrent(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := scytale.Build("LAYERTWOSLOWLYDESPARATLYSLOWLY", 5, scytale.Options{Offset: 2, ReverseRows: true})
			results[i] = scytale.ReadByColumns(g, true, false)
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}
