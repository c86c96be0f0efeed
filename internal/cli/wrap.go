package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/scytale"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// Output formats for wrap.
const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
)

// Readout selections for wrap.
const (
	readRows = "rows"
	readCols = "cols"
	readBoth = "both"
)

// wrapOptions holds the wrap command flags.
type wrapOptions struct {
	requestFlags
	read   string
	format string
}

// wrapCommand creates the wrap command.
func (c *CLI) wrapCommand() *cobra.Command {
	opts := wrapOptions{}

	cmd := &cobra.Command{
		Use:   "wrap [text]",
		Short: "Wrap text around a scytale and print the grid",
		Long: `Wrap text around a scytale of the given diameter and print the grid with its readouts.

The grid is filled row by row, optionally rotated by --offset and reversed
with --reverse-rows/--reverse-cols. Reading by columns recovers the
transposition.`,
		Example: `  kryptos wrap -d 4 "WEAREDISCOVERED"
  kryptos wrap --seed k3Plain -d 8 --read cols --format text
  echo HELLO | kryptos wrap -i - --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWrap(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.read, "read", readBoth, "readouts to print: rows, cols or both")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "output format: table, text or json")

	_ = cmd.RegisterFlagCompletionFunc("read", cobra.FixedCompletions([]string{readRows, readCols, readBoth}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{formatTable, formatText, formatJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runWrap(cmd *cobra.Command, args []string, opts wrapOptions) error {
	switch opts.read {
	case readRows, readCols, readBoth:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid --read %q (want rows, cols or both)", opts.read)
	}
	switch opts.format {
	case formatTable, formatText, formatJSON:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid --format %q (want table, text or json)", opts.format)
	}

	cfg, err := c.config()
	if err != nil {
		return err
	}
	req, err := opts.request(cmd, args, cfg)
	if err != nil {
		return err
	}

	res, err := workbench.NewRunner(nil, c.Logger, limits(cfg)).Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatJSON:
		err = writeWrapJSON(out, res, opts.read)
	case formatText:
		err = writeWrapText(out, res, opts.read)
	default:
		err = writeWrapTable(out, res, opts.read)
	}
	return err
}

// wrapJSON is the JSON shape printed by wrap. Readouts not selected by
// --read are omitted.
type wrapJSON struct {
	Diameter  int           `json:"diameter"`
	Rows      int           `json:"rows"`
	Grid      *scytale.Grid `json:"grid"`
	ByRows    *string       `json:"by_rows,omitempty"`
	ByColumns *string       `json:"by_columns,omitempty"`
}

func writeWrapJSON(w io.Writer, res *workbench.Result, read string) error {
	v := wrapJSON{
		Diameter: res.Stats.Diameter,
		Rows:     res.Stats.Rows,
		Grid:     res.Grid,
	}
	if read != readCols {
		v.ByRows = &res.Readout.ByRows
	}
	if read != readRows {
		v.ByColumns = &res.Readout.ByColumns
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeWrapText(w io.Writer, res *workbench.Result, read string) error {
	var b strings.Builder
	if read != readCols {
		b.WriteString(res.Readout.ByRows)
		b.WriteString("\n")
	}
	if read == readBoth {
		b.WriteString("\n")
	}
	if read != readRows {
		b.WriteString(res.Readout.ByColumns)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeWrapTable(w io.Writer, res *workbench.Result, read string) error {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Diameter %d", res.Stats.Diameter)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d rows · %d cells", res.Stats.Rows, res.Stats.Cells)))
	b.WriteString("\n")
	if !res.Grid.Empty() {
		b.WriteString(gridTable(res.Grid).Render())
		b.WriteString("\n")
	}
	if read != readCols {
		b.WriteString(readoutBlock("By rows", res.Readout.ByRows))
	}
	if read != readRows {
		b.WriteString(readoutBlock("By columns", res.Readout.ByColumns))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func readoutBlock(title, text string) string {
	return "\n" + StyleHighlight.Render(title) + "\n" + StyleValue.Render(text) + "\n"
}

// gridTable renders g with a column index header. Cells carrying a color
// tag are drawn in that color.
func gridTable(g *scytale.Grid) *table.Table {
	headers := make([]string, g.Diameter())
	for c := range headers {
		headers[c] = strconv.Itoa(c)
	}
	cells := g.Cells()
	rows := make([][]string, len(cells))
	for r, row := range cells {
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			rows[r][c] = displayRune(cell.Char)
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorDim)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(headerStyle)
			}
			if row < 0 || row >= len(cells) || col >= len(cells[row]) {
				return base
			}
			if color := cells[row][col].Color; color != "" {
				return base.Foreground(lipgloss.Color(color))
			}
			return base.Foreground(colorWhite)
		})
}

// displayRune makes whitespace cells visible in the table.
func displayRune(r rune) string {
	switch r {
	case ' ':
		return "·"
	case '\n':
		return "↵"
	case '\t':
		return "⇥"
	}
	return string(r)
}
