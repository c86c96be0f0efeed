package seeds

import "strings"

// Default sources accepted by [ApplyDefault].
const (
	SourceMorsePlain = "morse:plain"
	SourceMorseWithE = "morse:withE"
)

// morseWords is the plain word list used to prefill empty inputs. It differs
// from [MorseWithoutE] in order and spelling.
var morseWords = []string{
	"VIRTUALLY",
	"INTERPRETATIU",
	"INVISIBLE",
	"TISYOUR",
	"LUCID",
	"SHADOW",
	"POSITION",
	"MEMORY",
	"FORCES",
	"DIGITAL",
}

// ApplyDefault returns the default text for source when current is blank.
// The second result reports whether a default was applied; when it is false
// current is returned unchanged.
func ApplyDefault(current, source string) (string, bool) {
	if strings.TrimSpace(current) != "" {
		return current, false
	}
	switch source {
	case SourceMorsePlain:
		return strings.Join(morseWords, "\n"), true
	case SourceMorseWithE:
		return strings.Join(morseWordsWithE, "\n"), true
	default:
		return current, false
	}
}
