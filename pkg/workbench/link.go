package workbench

import (
	"net/url"
	"strings"

	"github.com/matzehuels/kryptos/pkg/urlstate"
)

// Schema maps the query parameters of a shareable workbench URL to
// [Request] fields.
var Schema = urlstate.Schema{
	{Alias: "t", Key: "text"},
	{Alias: "s", Key: "seed"},
	{Alias: "d", Key: "diameter", Type: urlstate.Number, Default: float64(DefaultDiameter)},
	{Alias: "o", Key: "offset", Type: urlstate.Number},
	{Alias: "rr", Key: "reverseRows", Type: urlstate.Boolean},
	{Alias: "rc", Key: "reverseCols", Type: urlstate.Boolean},
	{Alias: "pad", Key: "pad"},
	{Alias: "trim", Key: "trim", Type: urlstate.Boolean},
	{Alias: "lines", Key: "lines", Type: urlstate.Boolean},
	{Alias: "c", Key: "colorize", Type: urlstate.Boolean},
}

// FromQuery decodes a request from URL query parameters. Fractional offsets
// are truncated toward zero.
func FromQuery(q url.Values) Request {
	state := Schema.Decode(q)
	req := Request{
		Text:        urlstate.Str(state, "text"),
		Seed:        urlstate.Str(state, "seed"),
		ReverseRows: urlstate.Bool(state, "reverseRows"),
		ReverseCols: urlstate.Bool(state, "reverseCols"),
		Pad:         urlstate.Str(state, "pad"),
		Trim:        urlstate.Bool(state, "trim"),
		LineBreaks:  urlstate.Bool(state, "lines"),
		Colorize:    urlstate.Bool(state, "colorize"),
	}
	req.Diameter, _ = urlstate.Float(state, "diameter")
	if o, ok := urlstate.Float(state, "offset"); ok {
		req.Offset = int(o)
	}
	return req
}

// Query encodes req as URL query parameters. The diameter is always
// written; other zero values are omitted.
func (req Request) Query() url.Values {
	return Schema.Encode(req.state(), nil)
}

// Link returns base with req encoded into its query string. Query
// parameters of base that the schema does not use are kept.
func Link(base string, req Request) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", err
	}
	u.RawQuery = Schema.Encode(req.state(), u.Query()).Encode()
	return u.String(), nil
}

func (req Request) state() map[string]any {
	state := map[string]any{
		"text":     req.Text,
		"seed":     req.Seed,
		"diameter": req.Diameter,
		"pad":      req.Pad,
	}
	if req.Offset != 0 {
		state["offset"] = req.Offset
	}
	flags := map[string]bool{
		"reverseRows": req.ReverseRows,
		"reverseCols": req.ReverseCols,
		"trim":        req.Trim,
		"lines":       req.LineBreaks,
		"colorize":    req.Colorize,
	}
	for key, on := range flags {
		if on {
			state[key] = true
		}
	}
	return state
}
