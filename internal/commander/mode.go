package commander

import "strings"

// PartnerMode identifies the pairing mechanic that lets two commanders lead a
// deck together. Exactly one mode applies to any pair of commanders; ModeNone
// means no legal pairing exists.
type PartnerMode string

// The four pairing mechanics, plus ModeNone for incompatible pairs.
const (
	ModeNone            PartnerMode = "none"
	ModePartner         PartnerMode = "partner"
	ModePartnerWith     PartnerMode = "partner_with"
	ModeBackground      PartnerMode = "background"
	ModeDoctorCompanion PartnerMode = "doctor_companion"
)

// ModePrecedence lists the display precedence used when suggestions from
// several modes compete for visibility.
var ModePrecedence = []PartnerMode{ModePartnerWith, ModePartner, ModeDoctorCompanion, ModeBackground}

// ParseMode parses a mode string from external data. Hyphens and underscores
// are interchangeable and case is ignored; unknown strings map to ModeNone.
func ParseMode(s string) PartnerMode {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch normalized {
	case string(ModePartner):
		return ModePartner
	case string(ModePartnerWith):
		return ModePartnerWith
	case string(ModeBackground):
		return ModeBackground
	case string(ModeDoctorCompanion):
		return ModeDoctorCompanion
	default:
		return ModeNone
	}
}

// Label returns the human-readable name for the mode.
func (m PartnerMode) Label() string {
	switch m {
	case ModePartner:
		return "Partner"
	case ModePartnerWith:
		return "Partner With"
	case ModeBackground:
		return "Background"
	case ModeDoctorCompanion:
		return "Doctor's Companion"
	default:
		return "None"
	}
}

// modeRule pairs a mode with its applicability predicate. Rules are evaluated
// in slice order; the first match wins, which encodes the precedence between
// mechanics as data rather than control flow.
type modeRule struct {
	mode    PartnerMode
	applies func(a, b *Commander) bool
}

// modeRules in precedence order: Doctor's Companion is the narrowest
// mechanic, Partner-With is an author-declared relationship, Background
// outranks generic Partner, and plain/restricted Partner comes last.
var modeRules = []modeRule{
	{ModeDoctorCompanion, doctorCompanionApplies},
	{ModePartnerWith, partnerWithApplies},
	{ModeBackground, backgroundApplies},
	{ModePartner, partnerApplies},
}

// ResolveMode determines the single applicable pairing mode for a pair of
// commanders. Resolution is symmetric: ResolveMode(a, b) == ResolveMode(b, a).
func ResolveMode(a, b *Commander) PartnerMode {
	if a == nil || b == nil {
		return ModeNone
	}
	for _, rule := range modeRules {
		if rule.applies(a, b) {
			return rule.mode
		}
	}
	return ModeNone
}

func doctorCompanionApplies(a, b *Commander) bool {
	return (a.IsDoctor && b.IsDoctorsCompanion) || (b.IsDoctor && a.IsDoctorsCompanion)
}

// partnerWithApplies checks the Partner-With relationship in both directions:
// the printed text names only one side, but either direction makes the pair
// legal. A Background never pairs as a Partner-With candidate when the other
// side is asking for a background.
func partnerWithApplies(a, b *Commander) bool {
	if backgroundApplies(a, b) {
		return false
	}
	return listsPartner(a, b) || listsPartner(b, a)
}

func listsPartner(owner, other *Commander) bool {
	for _, name := range owner.PartnerWith {
		if namesEqual(name, other.Name) || namesEqual(name, other.DisplayName) {
			return true
		}
	}
	return false
}

func backgroundApplies(a, b *Commander) bool {
	return (a.SupportsBackgrounds && b.IsBackground) || (b.SupportsBackgrounds && a.IsBackground)
}

// partnerApplies covers both plain Partner and the restricted "Partner — X"
// variants. When either side carries a restricted label, the two label sets
// must intersect; a restricted partner never pairs with a plain one.
// Backgrounds are excluded outright even if they carry partner keywords.
func partnerApplies(a, b *Commander) bool {
	if a.IsBackground || b.IsBackground {
		return false
	}
	if !a.HasPartner || !b.HasPartner {
		return false
	}
	if len(a.RestrictedPartnerLabels) > 0 || len(b.RestrictedPartnerLabels) > 0 {
		return labelsIntersect(a.RestrictedPartnerLabels, b.RestrictedPartnerLabels)
	}
	return true
}
