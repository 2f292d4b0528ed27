// Package commander implements commander pairing mechanics for Commander
// (EDH) deck building: partner modes, commander descriptors, color identity
// handling, and combined-commander construction.
package commander

import (
	"fmt"
	"strings"
)

// Commander is a read-only view of a commander's pairing-relevant attributes.
// Instances are produced upstream (dataset rows, catalog records) and are not
// mutated by this package.
type Commander struct {
	// Name is the canonical card name.
	Name string

	// DisplayName is the name shown in UIs. Falls back to Name when empty.
	DisplayName string

	// ColorIdentity holds single-letter color codes (W, U, B, R, G).
	// An empty slice means colorless.
	ColorIdentity []string

	// ThemeTags are free-text gameplay theme labels. May contain duplicates
	// and noise labels; consumers deduplicate as needed.
	ThemeTags []string

	// PartnerWith lists the exact names this commander pairs with under the
	// "Partner with" mechanic. Empty if none.
	PartnerWith []string

	// HasPartner is true when any Partner keyword is present, plain or
	// restricted.
	HasPartner bool

	// HasPlainPartner is true for the unrestricted "Partner" keyword.
	HasPlainPartner bool

	// SupportsBackgrounds is true for "Choose a Background" commanders.
	SupportsBackgrounds bool

	// IsBackground is true when the card itself is a Background.
	IsBackground bool

	// IsDoctor / IsDoctorsCompanion drive the Doctor's Companion mechanic.
	// A card is never both.
	IsDoctor           bool
	IsDoctorsCompanion bool

	// RestrictedPartnerLabels holds named sub-partnership labels from
	// "Partner — X" variants (e.g. "Survivors"). Only non-empty when the
	// card has a restricted partner keyword.
	RestrictedPartnerLabels []string
}

// Label returns the display name, falling back to the canonical name.
func (c *Commander) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Validate checks the descriptor's internal invariants.
func (c *Commander) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("commander name is required")
	}
	if c.IsDoctor && c.IsDoctorsCompanion {
		return fmt.Errorf("commander %q cannot be both a Doctor and a Doctor's Companion", c.Name)
	}
	if len(c.RestrictedPartnerLabels) > 0 && c.HasPlainPartner {
		return fmt.Errorf("commander %q has restricted partner labels but a plain Partner keyword", c.Name)
	}
	return nil
}

// NormalizeName produces the canonical lookup form of a commander name:
// lowercased with runs of whitespace collapsed to single spaces. Every name
// comparison in this module goes through this function.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// namesEqual compares two commander names using the normalized form.
func namesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// labelsIntersect reports whether two restricted-label sets share a label,
// case-insensitively.
func labelsIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, label := range a {
		set[NormalizeName(label)] = struct{}{}
	}
	for _, label := range b {
		if _, ok := set[NormalizeName(label)]; ok {
			return true
		}
	}
	return false
}

// MergeThemeTags returns the union of two theme-tag lists, deduplicated
// case-insensitively. Primary's tags keep their original order, followed by
// any tags only the secondary contributes.
func MergeThemeTags(primary, secondary []string) []string {
	merged := make([]string, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, tags := range [][]string{primary, secondary} {
		for _, tag := range tags {
			key := NormalizeName(tag)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged
}
