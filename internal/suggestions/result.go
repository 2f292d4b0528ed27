package suggestions

import (
	"github.com/mtgkit/edh-companion/internal/commander"
)

// ColorDelta describes how a pairing changes the primary commander's color
// identity. Removed is always empty for legal pairings (unions never shrink)
// but is kept for wire-contract stability.
type ColorDelta struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Preview carries the merged-identity fields the web layer renders before a
// pairing is applied.
type Preview struct {
	ColorCode          string   `json:"color_code"`
	ColorLabel         string   `json:"color_label"`
	MergedThemes       []string `json:"merged_themes"`
	SecondaryRoleLabel string   `json:"secondary_role_label"`
}

// Suggestion is the per-candidate payload consumed by the web layer. Field
// names and nesting are a wire contract; do not rename.
type Suggestion struct {
	Name            string                `json:"name"`
	DisplayName     string                `json:"display_name"`
	Mode            commander.PartnerMode `json:"mode"`
	ModeLabel       string                `json:"mode_label"`
	Score           float64               `json:"score"`
	ScorePercent    int                   `json:"score_percent"`
	Components      map[string]float64    `json:"components"`
	Notes           []string              `json:"notes"`
	Reasons         []string              `json:"reasons"`
	Summary         string                `json:"summary"`
	SharedThemes    []string              `json:"shared_themes"`
	CandidateThemes []string              `json:"candidate_themes"`
	PairingCount    int                   `json:"pairing_count"`
	ColorCode       string                `json:"color_code"`
	ColorLabel      string                `json:"color_label"`
	ColorDelta      ColorDelta            `json:"color_delta"`
	Preview         Preview               `json:"preview"`
}

// Result groups ranked suggestions for one primary commander by mode.
type Result struct {
	Name        string                                  `json:"name"`
	DisplayName string                                  `json:"display_name"`
	Metadata    map[string]any                          `json:"metadata"`
	ByMode      map[commander.PartnerMode][]*Suggestion `json:"by_mode"`
	Total       int                                     `json:"total"`
}

// Flatten partitions the grouped suggestions into visible and hidden lists.
// Modes are visited in fixed precedence order (Partner-With, Partner,
// Doctor's Companion, Background); each suggestion is filtered against the
// caller's allow-lists (backgroundNames for Background mode, partnerNames
// for everything else), and the first visibleLimit survivors across all
// modes are visible. A non-positive visibleLimit keeps everything visible.
func (r *Result) Flatten(partnerNames, backgroundNames []string, visibleLimit int) (visible, hidden []*Suggestion) {
	allowed := func(names []string) map[string]struct{} {
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[commander.NormalizeName(name)] = struct{}{}
		}
		return set
	}
	partnerSet := allowed(partnerNames)
	backgroundSet := allowed(backgroundNames)

	for _, mode := range commander.ModePrecedence {
		for _, suggestion := range r.ByMode[mode] {
			set := partnerSet
			if mode == commander.ModeBackground {
				set = backgroundSet
			}
			key := commander.NormalizeName(suggestion.Name)
			if _, ok := set[key]; !ok {
				if _, ok := set[commander.NormalizeName(suggestion.DisplayName)]; !ok {
					continue
				}
			}
			if visibleLimit <= 0 || len(visible) < visibleLimit {
				visible = append(visible, suggestion)
			} else {
				hidden = append(hidden, suggestion)
			}
		}
	}
	return visible, hidden
}
