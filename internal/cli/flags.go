package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/config"
	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// requestFlags holds the workbench flags shared by wrap, explore and link.
type requestFlags struct {
	diameter    float64
	offset      int
	reverseRows bool
	reverseCols bool
	pad         string
	seed        string
	input       string
	lines       bool
	trim        bool
	colorize    bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64VarP(&f.diameter, "diameter", "d", 0, "scytale diameter (default from config)")
	flags.IntVar(&f.offset, "offset", 0, "rotate every row right by this many cells after filling")
	flags.BoolVar(&f.reverseRows, "reverse-rows", false, "mirror each row left to right")
	flags.BoolVar(&f.reverseCols, "reverse-cols", false, "reverse the order of rows")
	flags.StringVar(&f.pad, "pad", "", "pad character for the last row (default from config)")
	flags.StringVar(&f.seed, "seed", "", "use a built-in text (see 'kryptos seeds')")
	flags.StringVarP(&f.input, "input", "i", "", "read text from a file ('-' for stdin)")
	flags.BoolVar(&f.lines, "lines", false, "separate column readouts with line breaks")
	flags.BoolVar(&f.trim, "trim", false, "trim trailing whitespace from readouts")
	flags.BoolVar(&f.colorize, "color", false, "color cells by the row they were filled into")

	_ = cmd.RegisterFlagCompletionFunc("seed", completeSeeds)
}

// request assembles a workbench request. Text comes from the positional
// arguments, then --input, then --seed.
func (f *requestFlags) request(cmd *cobra.Command, args []string, cfg *config.Config) (workbench.Request, error) {
	req := workbench.Request{
		Seed:        f.seed,
		Diameter:    f.diameter,
		Offset:      f.offset,
		ReverseRows: f.reverseRows,
		ReverseCols: f.reverseCols,
		Pad:         f.pad,
		Trim:        f.trim,
		LineBreaks:  f.lines,
		Colorize:    f.colorize,
	}
	if !cmd.Flags().Changed("diameter") {
		req.Diameter = float64(cfg.Defaults.Diameter)
	}
	if req.Pad == "" {
		req.Pad = cfg.Defaults.Pad
	}

	switch {
	case len(args) > 0:
		req.Text = strings.Join(args, " ")
	case f.input != "":
		text, err := readInput(cmd.InOrStdin(), f.input)
		if err != nil {
			return req, err
		}
		req.Text = text
	case f.seed == "":
		return req, errors.New(errors.ErrCodeInvalidInput, "no text given: pass it as an argument, with --input or with --seed")
	}
	return req, nil
}

// readInput reads path, or stdin when path is "-". A single trailing newline
// is dropped so that `echo TEXT | kryptos wrap -i -` wraps exactly TEXT.
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
