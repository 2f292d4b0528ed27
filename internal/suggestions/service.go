package suggestions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/mtgkit/edh-companion/internal/commander"
)

// Service ranks partner candidates for a commander using the dataset cache.
type Service struct {
	cache  *DatasetCache
	logger *slog.Logger
}

// ServiceConfig configures the suggestion service.
type ServiceConfig struct {
	Cache  *DatasetCache
	Logger *slog.Logger
}

// NewService creates a suggestion service.
func NewService(config ServiceConfig) (*Service, error) {
	if config.Cache == nil {
		return nil, fmt.Errorf("dataset cache is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Service{cache: config.Cache, logger: config.Logger}, nil
}

// Options control a single suggestion request.
type Options struct {
	// LimitPerMode truncates each mode group (0 = unlimited).
	LimitPerMode int

	// IncludeModes restricts results to the listed modes (nil = all).
	IncludeModes []commander.PartnerMode

	// MinScore drops candidates scoring strictly below the threshold.
	MinScore float64

	// Refresh forces a dataset reload and resets the auto-refresh guard.
	Refresh bool
}

// DefaultOptions returns the standard request options.
func DefaultOptions() Options {
	return Options{
		LimitPerMode: 5,
		MinScore:     0.15,
	}
}

// GetPartnerSuggestions scores every other commander in the dataset against
// the named one and returns ranked per-mode groups. It returns (nil, nil)
// when the dataset is unavailable — callers must treat that as "suggestions
// temporarily unavailable" rather than an error — and an empty result when
// the commander has no dataset entry. Output is deterministic: groups are
// sorted by descending score, then ascending case-insensitive name.
func (s *Service) GetPartnerSuggestions(ctx context.Context, commanderName string, opts Options) (*Result, error) {
	dataset, scoring, err := s.cache.Load(ctx, opts.Refresh)
	if err != nil {
		s.logger.Warn("partner dataset load failed", "error", err)
		return nil, nil
	}
	if dataset == nil {
		return nil, nil
	}

	result := &Result{
		Name:     commanderName,
		Metadata: dataset.Metadata,
		ByMode:   make(map[commander.PartnerMode][]*Suggestion),
	}

	primary, ok := dataset.Lookup(commanderName)
	if !ok {
		return result, nil
	}
	result.Name = primary.Name
	result.DisplayName = primary.Label()

	included := includedModes(opts.IncludeModes)

	for _, candidate := range dataset.Entries {
		if candidate == primary {
			continue
		}
		score := ScorePartnerCandidate(primary.Commander, candidate.Commander, scoring)
		if score.Mode == commander.ModeNone {
			continue
		}
		if included != nil {
			if _, ok := included[score.Mode]; !ok {
				continue
			}
		}
		if score.Score < opts.MinScore {
			continue
		}

		combined, err := commander.BuildCombined(primary.Commander, candidate.Commander, score.Mode)
		if err != nil {
			var pairingErr *commander.PairingError
			if errors.As(err, &pairingErr) {
				s.logger.Debug("skipping candidate with illegal pairing",
					"primary", primary.Name,
					"candidate", candidate.Name,
					"mode", score.Mode,
					"reason", pairingErr.Reason)
				continue
			}
			return nil, err
		}

		count := scoring.PairingCount(score.Mode, primary.Name, candidate.Name)
		suggestion := buildSuggestion(primary, candidate, score, combined, count, scoring)
		result.ByMode[score.Mode] = append(result.ByMode[score.Mode], suggestion)
	}

	for mode, group := range result.ByMode {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Score != group[j].Score {
				return group[i].Score > group[j].Score
			}
			return strings.ToLower(group[i].Name) < strings.ToLower(group[j].Name)
		})
		if opts.LimitPerMode > 0 && len(group) > opts.LimitPerMode {
			group = group[:opts.LimitPerMode]
		}
		result.ByMode[mode] = group
		result.Total += len(group)
	}

	return result, nil
}

func includedModes(modes []commander.PartnerMode) map[commander.PartnerMode]struct{} {
	if len(modes) == 0 {
		return nil
	}
	set := make(map[commander.PartnerMode]struct{}, len(modes))
	for _, mode := range modes {
		set[mode] = struct{}{}
	}
	return set
}

// buildSuggestion assembles the wire payload for one ranked candidate.
func buildSuggestion(primary, candidate *CommanderEntry, score *ScoreResult, combined *commander.Combined, pairingCount int, scoring *Context) *Suggestion {
	shared := scoring.SharedThemes(primary.Commander.ThemeTags, candidate.Commander.ThemeTags)
	clamped := ClampScore(score.Score)
	percent := int(math.Round(clamped * 100))
	added := commander.ColorDelta(primary.Commander.ColorIdentity, combined.ColorIdentity)

	notes := make([]string, 0, len(score.Notes))
	reasons := make([]string, 0, len(score.Notes)+1)
	for _, note := range score.Notes {
		notes = append(notes, string(note))
		reasons = append(reasons, note.Label())
	}
	if sentence := colorDeltaSentence(added); sentence != "" {
		reasons = append(reasons, sentence)
	}

	return &Suggestion{
		Name:            candidate.Name,
		DisplayName:     candidate.Label(),
		Mode:            score.Mode,
		ModeLabel:       score.Mode.Label(),
		Score:           clamped,
		ScorePercent:    percent,
		Components:      score.Components,
		Notes:           notes,
		Reasons:         reasons,
		Summary:         summarize(percent, shared, pairingCount),
		SharedThemes:    shared,
		CandidateThemes: candidate.Themes,
		PairingCount:    pairingCount,
		ColorCode:       combined.ColorCode,
		ColorLabel:      combined.ColorLabel,
		ColorDelta: ColorDelta{
			Added:   added,
			Removed: []string{},
		},
		Preview: Preview{
			ColorCode:          combined.ColorCode,
			ColorLabel:         combined.ColorLabel,
			MergedThemes:       combined.ThemeTags,
			SecondaryRoleLabel: score.Mode.Label(),
		},
	}
}

// summarize builds the one-line human summary: percent, top shared themes,
// and the observed-pairing sentence.
func summarize(percent int, shared []string, pairingCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d%% match", percent)

	if len(shared) > 0 {
		top := shared
		if len(top) > 3 {
			top = top[:3]
		}
		fmt.Fprintf(&b, " — shares %s", strings.Join(top, ", "))
	}
	switch {
	case pairingCount == 1:
		b.WriteString("; seen together in 1 deck")
	case pairingCount > 1:
		fmt.Fprintf(&b, "; seen together in %d decks", pairingCount)
	}
	b.WriteString(".")
	return b.String()
}

func colorDeltaSentence(added []string) string {
	switch len(added) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Adds %s to your color identity", added[0])
	default:
		return fmt.Sprintf("Adds %s and %s to your color identity",
			strings.Join(added[:len(added)-1], ", "), added[len(added)-1])
	}
}
