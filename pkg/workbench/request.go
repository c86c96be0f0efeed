package workbench

import (
	"unicode/utf8"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/scytale"
	"github.com/matzehuels/kryptos/pkg/seeds"
)

// DefaultDiameter is used by shareable links that omit the diameter.
const DefaultDiameter = 8

// Request is a complete workbench state.
type Request struct {
	// Text is the grid input. When empty and Seed is set, the seed text is
	// used instead.
	Text string `json:"text"`
	Seed string `json:"seed,omitempty"`

	// Diameter is floored and clamped to at least 2. NaN and infinities
	// are rejected.
	Diameter    float64 `json:"diameter"`
	Offset      int     `json:"offset"`
	ReverseRows bool    `json:"reverse_rows"`
	ReverseCols bool    `json:"reverse_cols"`

	// Pad is the single pad character; empty means a space.
	Pad string `json:"pad,omitempty"`

	Trim       bool `json:"trim"`
	LineBreaks bool `json:"line_breaks"`

	// Colorize tags every cell with the color of the source line it was
	// filled from, so transforms can be followed visually.
	Colorize bool `json:"colorize,omitempty"`
}

// Limits bounds the work a single request may cause. Zero fields are
// unlimited.
type Limits struct {
	MaxDiameter  int
	MaxTextRunes int
}

// resolved is a validated request ready to build.
type resolved struct {
	text     string
	diameter int
	opts     scytale.Options
	read     scytale.ReadOptions
}

// Validate checks req against limits without building anything.
func (req Request) Validate(limits Limits) error {
	_, err := req.resolve(limits)
	return err
}

func (req Request) resolve(limits Limits) (resolved, error) {
	text := req.Text
	if text == "" && req.Seed != "" {
		s, ok := seeds.Lookup(req.Seed)
		if !ok {
			return resolved{}, errors.New(errors.ErrCodeInvalidInput, "unknown seed %q", req.Seed)
		}
		text = s.Text
	}
	if limits.MaxTextRunes > 0 && utf8.RuneCountInString(text) > limits.MaxTextRunes {
		return resolved{}, errors.New(errors.ErrCodeInvalidInput, "text too long (max %d characters)", limits.MaxTextRunes)
	}

	d, err := scytale.DiameterFromFloat(req.Diameter)
	if err != nil {
		return resolved{}, errors.Wrap(errors.ErrCodeInvalidDiameter, err, "invalid diameter")
	}
	if limits.MaxDiameter > 0 && d > limits.MaxDiameter {
		return resolved{}, errors.New(errors.ErrCodeInvalidDiameter, "diameter %d exceeds maximum %d", d, limits.MaxDiameter)
	}

	var pad rune
	switch utf8.RuneCountInString(req.Pad) {
	case 0:
	case 1:
		pad, _ = utf8.DecodeRuneInString(req.Pad)
	default:
		return resolved{}, errors.New(errors.ErrCodeInvalidInput, "pad must be a single character, got %q", req.Pad)
	}

	opts := scytale.Options{
		Offset:      req.Offset,
		ReverseRows: req.ReverseRows,
		ReverseCols: req.ReverseCols,
		PadChar:     pad,
	}
	if req.Colorize {
		opts.Tag = LineColors(d)
	}
	return resolved{
		text:     text,
		diameter: d,
		opts:     opts,
		read:     scytale.ReadOptions{LineBreaks: req.LineBreaks, Trim: req.Trim},
	}, nil
}

// Palette is the cycle of colors used by [LineColors].
var Palette = []string{"#e06c75", "#e5c07b", "#98c379", "#56b6c2", "#61afef", "#c678dd"}

// LineColors returns a tag function that colors a cell by the grid row it
// was filled into. Pad cells are left uncolored.
func LineColors(diameter int) scytale.TagFunc {
	return func(index int, _ rune) string {
		if index < 0 {
			return ""
		}
		return Palette[(index/diameter)%len(Palette)]
	}
}
