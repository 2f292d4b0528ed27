// Package deck holds the in-progress deck state that partner selection
// operates on. Building the 99-card list itself lives elsewhere; this
// package only tracks the commander pairing and merged theme tags.
package deck

import (
	"github.com/mtgkit/edh-companion/internal/commander"
)

// Builder is an in-progress deck centered on a primary commander. Applying a
// partner selection sets the secondary slot and merges theme tags.
type Builder struct {
	Primary   *commander.Commander
	Secondary *commander.Commander

	// Mode is the pairing mechanic of the current selection, ModeNone when
	// no secondary is set.
	Mode commander.PartnerMode

	// ThemeTags is the working tag set: the primary's tags, extended with
	// the secondary's when a selection is applied. Deduplicated
	// case-insensitively, order-stable.
	ThemeTags []string

	// Combined caches the merged identity of the current selection.
	Combined *commander.Combined
}

// NewBuilder starts a deck around a primary commander.
func NewBuilder(primary *commander.Commander) *Builder {
	b := &Builder{Primary: primary, Mode: commander.ModeNone}
	if primary != nil {
		b.ThemeTags = commander.MergeThemeTags(primary.ThemeTags, nil)
	}
	return b
}

// setSecondary records a selection on the builder. Merging is idempotent:
// applying the same selection twice yields the same tag set in the same
// order.
func (b *Builder) setSecondary(secondary *commander.Commander, combined *commander.Combined) {
	b.Secondary = secondary
	b.Mode = combined.Mode
	b.Combined = combined
	b.ThemeTags = commander.MergeThemeTags(b.ThemeTags, secondary.ThemeTags)
}
