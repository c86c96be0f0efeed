package seeds

import "strings"

// Seed is a named sample text.
type Seed struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Empty reports whether the seed has no text.
func (s Seed) Empty() bool {
	return s.Text == ""
}

// Morse fragments, one word per line.
var (
	MorseWithoutE = strings.Join([]string{
		"VIRTUALLY",
		"INVISIBLE",
		"SHADOW",
		"FORCES",
		"LUCID",
		"MEMORY",
		"RQ",
		"SOS",
		"DIGETAL",
		"INTERPRETATIU",
		"TISYOUR",
		"POSITION",
	}, "\n")

	MorseWithE = strings.Join(morseWordsWithE, "\n")
)

var morseWordsWithE = []string{
	"EEVIRTUALLYE",
	"EEEEEEINVISIBLE",
	"EESHADOWEE",
	"FORCESEEEEE",
	"LUCIDEEE",
	"MEMORYE",
	"RQ",
	"SOS",
	"EDIGETALEEE",
	"INTERPRETATIO",
	"TISYOUR",
	"POSITIONE",
}

// Plaintexts of the solved sections and the published K4 crib.
const (
	K1Plain = "BETWEENSUBTLESHADINGANDTHEABSENCEOFLIGHTLIESTHENUANCEOFIQLUSION"

	K2Plain = "ITWASTOTALLYINVISIBLEHOWSTHATPOSSIBLETHEYUSEDTHEEARTHSMAGNETICFIELDX" +
		"THEINFORMATIONWASGATHEREDANDTRANSMITTEDUNDERGROUNDTOANUNKNOWNLOCATIONX" +
		"DOESLANGLEYKNOWABOUTTHISTHEYSHOULDITSBURIEDOUTTHERESOMEWHEREX" +
		"WHOKNOWSTHEEXACTLOCATIONONLYWWTHISWASHISLASTMESSAGEX" +
		"THIRTYEIGHTDEGREESFIFTYSEVENMINUTESSIXPOINTFIVESECONDSNORTH" +
		"SEVENTYSEVENDEGREESEIGHTMINUTESFORTYFOURSECONDSWEST"

	K3Plain = "LAYERTWOSLOWLYDESPARATLYSLOWLYTHEREMAINSOFPASSAGEDEBRISTHATENCUMBERED" +
		"THELOWERPARTOFTHEDOORWAYWASREMOVEDWITHTREMBLINGHANDSIMADEATINYBREACH" +
		"INTHEUPPERLEFTHANDCORNERANDTHENWIDENINGTHEHOLEALITTILEIINSERTEDTHECANDLE" +
		"ANDPEEREDINTOTHEHOTAIRESCAPINGFROMTHECHAMBERCAUSEDTHEFLAMETOFLICKER" +
		"BUTPRESENTLYDETAILSOFTHEROOMWITHINEMERGEDFROMTHEMISTXCANYOUSEEANYTHINGQ"

	K4Conventional = "BERLINCLOCK"
)

var all = []Seed{
	{Key: "morse", Label: "Morse Code", Text: MorseWithoutE},
	{Key: "morseWithEs", Label: "Morse Code with EEs", Text: MorseWithE},
	{Key: "k1", Label: "K1"},
	{Key: "k2", Label: "K2"},
	{Key: "k3", Label: "K3"},
	{Key: "k4Conventional", Label: "K4 (conventional wisdom)", Text: K4Conventional},
	{Key: "k4DSTheory", Label: "K4 (DS Theory)"},
	{Key: "k1Plain", Label: "K1 Plaintext", Text: K1Plain},
	{Key: "k2Plain", Label: "K2 Plaintext", Text: K2Plain},
	{Key: "k3Plain", Label: "K3 Plaintext", Text: K3Plain},
}

// All returns every seed in display order. The slice is a copy.
func All() []Seed {
	return append([]Seed(nil), all...)
}

// Keys returns the seed keys in display order.
func Keys() []string {
	keys := make([]string, len(all))
	for i, s := range all {
		keys[i] = s.Key
	}
	return keys
}

// Lookup returns the seed with the given key.
func Lookup(key string) (Seed, bool) {
	for _, s := range all {
		if s.Key == key {
			return s, true
		}
	}
	return Seed{}, false
}
