package commander

import "strings"

// Color constants for WUBRG.
const (
	ColorWhite = "W"
	ColorBlue  = "U"
	ColorBlack = "B"
	ColorRed   = "R"
	ColorGreen = "G"
)

// AllColors lists the five colors in canonical WUBRG order.
var AllColors = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

var colorRank = map[string]int{
	ColorWhite: 0,
	ColorBlue:  1,
	ColorBlack: 2,
	ColorRed:   3,
	ColorGreen: 4,
}

var colorNames = map[string]string{
	ColorWhite: "White",
	ColorBlue:  "Blue",
	ColorBlack: "Black",
	ColorRed:   "Red",
	ColorGreen: "Green",
}

// comboNames maps canonical color codes to their conventional names. The
// two-color names are the Ravnica guilds, the three-color names the Alara
// shards and Tarkir wedges, the four-color names the Commander 2016 set.
// These strings are part of the user-visible contract and must not change.
var comboNames = map[string]string{
	"":      "Colorless",
	"W":     "White",
	"U":     "Blue",
	"B":     "Black",
	"R":     "Red",
	"G":     "Green",
	"WU":    "Azorius",
	"UB":    "Dimir",
	"BR":    "Rakdos",
	"RG":    "Gruul",
	"WG":    "Selesnya",
	"WB":    "Orzhov",
	"UR":    "Izzet",
	"BG":    "Golgari",
	"WR":    "Boros",
	"UG":    "Simic",
	"WUG":   "Bant",
	"WUB":   "Esper",
	"UBR":   "Grixis",
	"BRG":   "Jund",
	"WRG":   "Naya",
	"WBG":   "Abzan",
	"WUR":   "Jeskai",
	"UBG":   "Sultai",
	"WBR":   "Mardu",
	"URG":   "Temur",
	"WUBR":  "Artifice",
	"UBRG":  "Chaos",
	"WBRG":  "Aggression",
	"WURG":  "Altruism",
	"WUBG":  "Growth",
	"WUBRG": "Five-Color",
}

// CanonicalColors normalizes a color identity: uppercase, deduplicated,
// unknown letters dropped, sorted into WUBRG order.
func CanonicalColors(colors []string) []string {
	present := make(map[string]bool, len(colors))
	for _, c := range colors {
		letter := strings.ToUpper(strings.TrimSpace(c))
		if _, ok := colorRank[letter]; ok {
			present[letter] = true
		}
	}
	canonical := make([]string, 0, len(present))
	for _, letter := range AllColors {
		if present[letter] {
			canonical = append(canonical, letter)
		}
	}
	return canonical
}

// UnionColorIdentity returns the canonical union of two color identities.
// The union is commutative and always a superset of both inputs.
func UnionColorIdentity(a, b []string) []string {
	combined := make([]string, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return CanonicalColors(combined)
}

// ColorCode renders a color identity as its canonical letter string,
// e.g. {U,W,R} -> "WUR". Colorless renders as "C".
func ColorCode(colors []string) string {
	canonical := CanonicalColors(colors)
	if len(canonical) == 0 {
		return "C"
	}
	return strings.Join(canonical, "")
}

// ColorLabel returns the conventional name for a color identity, e.g.
// "Esper" for WUB or "Colorless" for an empty identity.
func ColorLabel(colors []string) string {
	canonical := CanonicalColors(colors)
	if name, ok := comboNames[strings.Join(canonical, "")]; ok {
		return name
	}
	// Unreachable for valid WUBRG subsets, but degrade readably.
	names := make([]string, 0, len(canonical))
	for _, c := range canonical {
		names = append(names, colorNames[c])
	}
	return strings.Join(names, "-")
}

// ColorName returns the full name of a single color letter.
func ColorName(letter string) string {
	if name, ok := colorNames[strings.ToUpper(letter)]; ok {
		return name
	}
	return letter
}

// ColorDelta returns the full names of colors present in combined but not in
// base, in canonical order. Used to describe what a pairing adds to the
// primary commander's identity.
func ColorDelta(base, combined []string) []string {
	have := make(map[string]bool, len(base))
	for _, c := range CanonicalColors(base) {
		have[c] = true
	}
	var added []string
	for _, c := range CanonicalColors(combined) {
		if !have[c] {
			added = append(added, colorNames[c])
		}
	}
	return added
}
