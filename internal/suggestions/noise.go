// Package suggestions scores partner candidates for a commander and ranks
// them into per-mode suggestion groups backed by a precomputed pairing
// dataset.
package suggestions

import "github.com/mtgkit/edh-companion/internal/commander"

// noiseThemes lists theme tags that are near-universal on legendary cards and
// therefore carry no similarity signal. The same denylist feeds both overlap
// scoring and the shared-themes display so the two never disagree.
var noiseThemes = map[string]struct{}{
	"partner":          {},
	"legends matter":   {},
	"historics matter": {},
}

// IsNoiseTheme reports whether a theme tag should be excluded from overlap
// counting. Matching is case- and whitespace-insensitive.
func IsNoiseTheme(tag string) bool {
	_, ok := noiseThemes[commander.NormalizeName(tag)]
	return ok
}
