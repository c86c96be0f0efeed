// Package urlstate encodes workbench state into URL query parameters and
// back.
//
// A [Schema] maps short query aliases to state keys with a value type:
//
//	schema := urlstate.Schema{
//	    {Alias: "t", Key: "text"},
//	    {Alias: "d", Key: "diameter", Type: urlstate.Number, Default: 8.0},
//	    {Alias: "rr", Key: "reverseRows", Type: urlstate.Boolean},
//	}
//	state := schema.Decode(r.URL.Query())
//	link := schema.Encode(state, nil)
//
// Decoding is lenient: a number that does not parse is dropped, and a
// boolean is true only for "1", "true" or "yes" (any case). Encoding keeps
// query parameters the schema does not know about and removes parameters
// whose state value is nil or empty.
package urlstate
