package suggestions

import "github.com/mtgkit/edh-companion/internal/commander"

// Context carries the dataset-wide statistics the scorer needs. It is built
// once per dataset load and shared by every scoring call against that
// dataset.
type Context struct {
	// themeFrequency counts how many commanders carry each normalized theme.
	themeFrequency map[string]int

	// totalCommanders is the number of entries the frequencies were computed
	// over.
	totalCommanders int

	// pairings indexes observed pairing counts; may be nil when the dataset
	// records none.
	pairings *PairingIndex
}

// frequencyNoiseRatio marks a theme as noise when it appears on more than
// this share of all commanders in the dataset.
const frequencyNoiseRatio = 0.6

// NewContext builds a scoring context from dataset entries.
func NewContext(entries []*CommanderEntry, pairings *PairingIndex) *Context {
	ctx := &Context{
		themeFrequency:  make(map[string]int),
		totalCommanders: len(entries),
		pairings:        pairings,
	}
	for _, entry := range entries {
		seen := make(map[string]struct{})
		for _, tag := range entry.Themes {
			key := commander.NormalizeName(tag)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ctx.themeFrequency[key]++
		}
	}
	return ctx
}

// IsNoise reports whether a theme tag should be ignored for overlap: either
// it is on the fixed denylist or it is so frequent in this dataset that it
// carries no discriminative signal.
func (c *Context) IsNoise(tag string) bool {
	if IsNoiseTheme(tag) {
		return true
	}
	if c == nil || c.totalCommanders == 0 {
		return false
	}
	count := c.themeFrequency[commander.NormalizeName(tag)]
	return float64(count) > frequencyNoiseRatio*float64(c.totalCommanders)
}

// SharedThemes returns the non-noise themes present on both commanders,
// preserving the primary's tag order and deduplicating case-insensitively.
func (c *Context) SharedThemes(primary, candidate []string) []string {
	candidateSet := make(map[string]struct{}, len(candidate))
	for _, tag := range candidate {
		candidateSet[commander.NormalizeName(tag)] = struct{}{}
	}

	var shared []string
	seen := make(map[string]struct{})
	for _, tag := range primary {
		key := commander.NormalizeName(tag)
		if key == "" || c.IsNoise(tag) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if _, ok := candidateSet[key]; ok {
			seen[key] = struct{}{}
			shared = append(shared, tag)
		}
	}
	return shared
}

// PairingCount returns the observed deck count for a pair under a mode, or
// zero when the dataset has no record. Lookup is symmetric.
func (c *Context) PairingCount(mode commander.PartnerMode, a, b string) int {
	if c == nil || c.pairings == nil {
		return 0
	}
	return c.pairings.Count(mode, a, b)
}
