package deck

import (
	"fmt"

	"github.com/mtgkit/edh-companion/internal/catalog"
	"github.com/mtgkit/edh-companion/internal/commander"
)

// SelectionInputs are the user-supplied names for a partner selection.
// SecondaryName and BackgroundName are mutually exclusive; names are matched
// against the catalog case- and whitespace-insensitively.
type SelectionInputs struct {
	PrimaryName    string
	SecondaryName  string
	BackgroundName string

	// Enabled is the partner-mechanics feature flag. When false the
	// selection is skipped entirely.
	Enabled bool
}

// ApplyPartnerInputs resolves the selection against the catalog and applies
// it to the builder: the secondary commander slot is set and theme tags are
// merged. It returns the combined identity for display, or nil when the
// feature is disabled or no secondary/background was named. Unknown names
// and illegal pairings return descriptive errors rather than silently doing
// nothing.
func ApplyPartnerInputs(b *Builder, cat catalog.Catalog, inputs SelectionInputs) (*commander.Combined, error) {
	if !inputs.Enabled {
		return nil, nil
	}
	if b == nil {
		return nil, fmt.Errorf("deck builder is required")
	}
	if inputs.SecondaryName != "" && inputs.BackgroundName != "" {
		return nil, fmt.Errorf("choose a partner or a background, not both")
	}

	primary := b.Primary
	if primary == nil {
		if inputs.PrimaryName == "" {
			return nil, fmt.Errorf("primary commander is required")
		}
		resolved, ok := cat.Lookup(inputs.PrimaryName)
		if !ok {
			return nil, fmt.Errorf("unknown commander %q", inputs.PrimaryName)
		}
		primary = resolved
		b.Primary = resolved
		b.ThemeTags = commander.MergeThemeTags(resolved.ThemeTags, b.ThemeTags)
	}

	secondaryName := inputs.SecondaryName
	wantBackground := false
	if secondaryName == "" {
		secondaryName = inputs.BackgroundName
		wantBackground = true
	}
	if secondaryName == "" {
		return nil, nil
	}

	secondary, ok := cat.Lookup(secondaryName)
	if !ok {
		if wantBackground {
			return nil, fmt.Errorf("unknown background %q", secondaryName)
		}
		return nil, fmt.Errorf("unknown partner %q", secondaryName)
	}
	if wantBackground && !secondary.IsBackground {
		return nil, fmt.Errorf("%q is not a Background", secondary.Label())
	}

	mode := commander.ResolveMode(primary, secondary)
	if mode == commander.ModeNone {
		return nil, &commander.PairingError{
			Mode:      mode,
			Primary:   primary.Label(),
			Secondary: secondary.Label(),
			Reason:    "no pairing mechanic applies to these commanders",
		}
	}
	combined, err := commander.BuildCombined(primary, secondary, mode)
	if err != nil {
		return nil, err
	}

	b.setSecondary(secondary, combined)
	return combined, nil
}
