package commander

import "fmt"

// Combined is the merged identity of a legal commander pairing. It is built
// fresh for every scoring call or explicit selection and never mutated.
type Combined struct {
	PrimaryName   string      `json:"primary_name"`
	SecondaryName string      `json:"secondary_name"`
	Mode          PartnerMode `json:"mode"`

	// ColorIdentity is the canonical union of both identities. The pre-union
	// components are retained for diffing in UIs.
	ColorIdentity          []string `json:"color_identity"`
	PrimaryColorIdentity   []string `json:"primary_color_identity"`
	SecondaryColorIdentity []string `json:"secondary_color_identity"`

	// ThemeTags is the case-insensitive union, primary's tags first.
	ThemeTags []string `json:"theme_tags"`

	ColorCode  string `json:"color_code"`
	ColorLabel string `json:"color_label"`
}

// PairingError reports an illegal pairing request: the requested mode is not
// actually satisfied by the two commanders. The Reason names the rule that
// failed so callers can surface a specific message.
type PairingError struct {
	Mode      PartnerMode
	Primary   string
	Secondary string
	Reason    string
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("cannot pair %q with %q as %s: %s", e.Primary, e.Secondary, e.Mode.Label(), e.Reason)
}

// BuildCombined merges two commanders under the given mode. The caller is
// expected to have resolved the mode via ResolveMode, but legality is
// re-validated here so an illegal request can never produce a merged
// identity.
func BuildCombined(primary, secondary *Commander, mode PartnerMode) (*Combined, error) {
	if primary == nil || secondary == nil {
		return nil, fmt.Errorf("both commanders are required")
	}
	if err := validatePairing(primary, secondary, mode); err != nil {
		return nil, err
	}

	union := UnionColorIdentity(primary.ColorIdentity, secondary.ColorIdentity)
	return &Combined{
		PrimaryName:            primary.Label(),
		SecondaryName:          secondary.Label(),
		Mode:                   mode,
		ColorIdentity:          union,
		PrimaryColorIdentity:   CanonicalColors(primary.ColorIdentity),
		SecondaryColorIdentity: CanonicalColors(secondary.ColorIdentity),
		ThemeTags:              MergeThemeTags(primary.ThemeTags, secondary.ThemeTags),
		ColorCode:              ColorCode(union),
		ColorLabel:             ColorLabel(union),
	}, nil
}

func validatePairing(primary, secondary *Commander, mode PartnerMode) error {
	fail := func(reason string) error {
		return &PairingError{
			Mode:      mode,
			Primary:   primary.Label(),
			Secondary: secondary.Label(),
			Reason:    reason,
		}
	}

	switch mode {
	case ModePartnerWith:
		if !partnerWithApplies(primary, secondary) {
			return fail("these commanders do not share a Partner-With relationship")
		}
	case ModeBackground:
		if !backgroundApplies(primary, secondary) {
			return fail("one commander must choose a Background and the other must be a Background")
		}
	case ModeDoctorCompanion:
		if !doctorCompanionApplies(primary, secondary) {
			return fail("one commander must be a Doctor and the other a Doctor's Companion")
		}
	case ModePartner:
		if primary.IsBackground || secondary.IsBackground {
			return fail("a Background cannot pair under the Partner mechanic")
		}
		if !primary.HasPartner || !secondary.HasPartner {
			return fail("both commanders must have the Partner keyword")
		}
		if !partnerApplies(primary, secondary) {
			return fail("restricted Partner labels do not match")
		}
	default:
		return fail("no legal pairing mode applies")
	}
	return nil
}
