package suggestions

import (
	"math"

	"github.com/mtgkit/edh-companion/internal/commander"
)

// Note identifies a qualitative scoring rule that fired. The closed set keeps
// the translation to display labels total: every note has a label.
type Note string

// Scoring notes, in rough order of strength.
const (
	NotePartnerWithMatch     Note = "partner_with_match"
	NoteBackgroundCompatible Note = "background_compatible"
	NoteDoctorCompanionMatch Note = "doctor_companion_match"
	NoteRestrictedLabelMatch Note = "restricted_label_match"
	NoteSharedPartnerKeyword Note = "shared_partner_keyword"
	NoteThemeOverlap         Note = "theme_overlap"
	NoteObservedPairing      Note = "observed_pairing"
)

// Label returns the display string for a note.
func (n Note) Label() string {
	switch n {
	case NotePartnerWithMatch:
		return "Printed Partner-With pairing"
	case NoteBackgroundCompatible:
		return "Compatible Background"
	case NoteDoctorCompanionMatch:
		return "Doctor and Companion"
	case NoteRestrictedLabelMatch:
		return "Shared restricted Partner label"
	case NoteSharedPartnerKeyword:
		return "Both have the Partner keyword"
	case NoteThemeOverlap:
		return "Overlapping themes"
	case NoteObservedPairing:
		return "Seen together in real decks"
	default:
		return string(n)
	}
}

// Score component names.
const (
	ComponentOverlap = "overlap"
	ComponentKeyword = "keyword"
	ComponentDataset = "dataset"
)

// Scoring weights. The exact values are tuned; the ordering between them is
// the contract: a printed Partner-With pairing outweighs a Background or
// Doctor-Companion match, which outweighs a shared restricted label, which
// outweighs the generic shared Partner keyword.
const (
	overlapWeight         = 0.35
	bonusPartnerWith      = 0.40
	bonusBackground       = 0.35
	bonusDoctorCompanion  = 0.35
	bonusRestrictedLabel  = 0.30
	bonusPlainPartner     = 0.15
	datasetWeight         = 0.25
	datasetSaturationDeck = 6.0
)

// ScoreResult is the outcome of scoring one candidate against a primary
// commander. Score is the raw component sum; it can exceed 1.0, so callers
// clamp for display.
type ScoreResult struct {
	Mode       commander.PartnerMode
	Score      float64
	Components map[string]float64
	Notes      []Note
}

// ScorePartnerCandidate determines the applicable pairing mode for the pair
// and computes a weighted compatibility score. An incompatible pair returns
// mode none with a zero score and no notes; callers filter those out before
// ranking. Scores for (A,B) and (B,A) may differ numerically but always
// agree on the mode.
func ScorePartnerCandidate(primary, candidate *commander.Commander, ctx *Context) *ScoreResult {
	mode := commander.ResolveMode(primary, candidate)
	if mode == commander.ModeNone {
		return &ScoreResult{Mode: commander.ModeNone, Components: map[string]float64{}}
	}

	result := &ScoreResult{
		Mode:       mode,
		Components: make(map[string]float64, 3),
	}

	// Theme overlap with diminishing returns: each additional shared theme
	// contributes half of what the previous one did.
	shared := ctx.SharedThemes(primary.ThemeTags, candidate.ThemeTags)
	if k := len(shared); k > 0 {
		result.Components[ComponentOverlap] = overlapWeight * (1 - math.Pow(0.5, float64(k)))
		result.Notes = append(result.Notes, NoteThemeOverlap)
	}

	// Mechanical bonus for the structural strength of the pairing.
	var keyword float64
	switch mode {
	case commander.ModePartnerWith:
		keyword = bonusPartnerWith
		result.Notes = append(result.Notes, NotePartnerWithMatch)
	case commander.ModeBackground:
		keyword = bonusBackground
		result.Notes = append(result.Notes, NoteBackgroundCompatible)
	case commander.ModeDoctorCompanion:
		keyword = bonusDoctorCompanion
		result.Notes = append(result.Notes, NoteDoctorCompanionMatch)
	case commander.ModePartner:
		if len(primary.RestrictedPartnerLabels) > 0 || len(candidate.RestrictedPartnerLabels) > 0 {
			keyword = bonusRestrictedLabel
			result.Notes = append(result.Notes, NoteRestrictedLabelMatch, NoteSharedPartnerKeyword)
		} else {
			keyword = bonusPlainPartner
			result.Notes = append(result.Notes, NoteSharedPartnerKeyword)
		}
	}
	result.Components[ComponentKeyword] = keyword

	// Popularity bonus, saturating so one very popular pairing cannot
	// dominate unboundedly.
	if count := ctx.PairingCount(mode, primary.Name, candidate.Name); count > 0 {
		result.Components[ComponentDataset] = datasetWeight * float64(count) / (float64(count) + datasetSaturationDeck)
		result.Notes = append(result.Notes, NoteObservedPairing)
	}

	for _, v := range result.Components {
		result.Score += v
	}
	return result
}

// ClampScore bounds a raw score into [0, 1] for display. Component sums are
// not pre-clamped, so percent displays must go through this.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
