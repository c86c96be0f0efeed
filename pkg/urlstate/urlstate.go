package urlstate

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Type is the value type of a schema entry.
type Type int

const (
	String Type = iota
	Number
	Boolean
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

// Entry maps a query alias to a state key.
type Entry struct {
	Alias   string
	Key     string
	Type    Type
	Default any // used when the alias is absent; nil means no default
}

// Schema is an ordered list of entries.
type Schema []Entry

// Validate reports entries with an empty alias or key and duplicated aliases
// or keys.
func (s Schema) Validate() error {
	aliases := make(map[string]bool, len(s))
	keys := make(map[string]bool, len(s))
	for i, e := range s {
		if e.Alias == "" || e.Key == "" {
			return fmt.Errorf("urlstate: entry %d: alias and key are required", i)
		}
		if aliases[e.Alias] {
			return fmt.Errorf("urlstate: duplicate alias %q", e.Alias)
		}
		if keys[e.Key] {
			return fmt.Errorf("urlstate: duplicate key %q", e.Key)
		}
		aliases[e.Alias], keys[e.Key] = true, true
	}
	return nil
}

// Lookup returns the entry for a state key.
func (s Schema) Lookup(key string) (Entry, bool) {
	for _, e := range s {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Decode reads the schema's aliases from q. Only the first value of a
// repeated parameter is used. Values are string, float64 or bool by entry
// type. A missing parameter, or one that fails to coerce (empty, malformed
// or non-finite numbers), takes the entry's Default, or is left out of the
// result when there is none.
func (s Schema) Decode(q url.Values) map[string]any {
	out := make(map[string]any, len(s))
	for _, e := range s {
		if raw, ok := q[e.Alias]; ok && len(raw) > 0 {
			if v, ok := coerce(raw[0], e.Type); ok {
				out[e.Key] = v
				continue
			}
		}
		if e.Default != nil {
			out[e.Key] = e.Default
		}
	}
	return out
}

// Encode writes state into a copy of base. Parameters not named by the
// schema are kept; a schema parameter is removed when its state value is
// missing, nil or the empty string.
func (s Schema) Encode(state map[string]any, base url.Values) url.Values {
	q := make(url.Values, len(base)+len(s))
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}
	for _, e := range s {
		v, ok := state[e.Key]
		str := ""
		if ok && v != nil {
			str = stringify(v)
		}
		if str == "" {
			q.Del(e.Alias)
			continue
		}
		q.Set(e.Alias, str)
	}
	return q
}

func coerce(raw string, t Type) (any, bool) {
	switch t {
	case Number:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return n, true
	case Boolean:
		switch strings.ToLower(raw) {
		case "1", "true", "yes":
			return true, true
		default:
			return false, true
		}
	default:
		return raw, true
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Float returns state[key] as a float64.
func Float(state map[string]any, key string) (float64, bool) {
	switch v := state[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool returns state[key] as a bool; missing keys are false.
func Bool(state map[string]any, key string) bool {
	b, _ := state[key].(bool)
	return b
}

// Str returns state[key] as a string; missing keys are empty.
func Str(state map[string]any, key string) string {
	s, _ := state[key].(string)
	return s
}
