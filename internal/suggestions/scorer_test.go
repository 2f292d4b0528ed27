package suggestions

import (
	"testing"

	"github.com/mtgkit/edh-companion/internal/commander"
)

func emptyContext() *Context {
	return NewContext(nil, NewPairingIndex())
}

func testAkiri() *commander.Commander {
	return &commander.Commander{
		Name:            "Akiri, Line-Slinger",
		ColorIdentity:   []string{"W", "R"},
		ThemeTags:       []string{"Equipment", "Artifacts Matter", "Legends Matter"},
		PartnerWith:     []string{"Silas Renn, Seeker Adept"},
		HasPartner:      true,
		HasPlainPartner: true,
	}
}

func testSilas() *commander.Commander {
	return &commander.Commander{
		Name:            "Silas Renn, Seeker Adept",
		ColorIdentity:   []string{"U", "B"},
		ThemeTags:       []string{"Artifacts Matter", "Graveyard Matters"},
		PartnerWith:     []string{"Akiri, Line-Slinger"},
		HasPartner:      true,
		HasPlainPartner: true,
	}
}

func testIshai() *commander.Commander {
	return &commander.Commander{
		Name:            "Ishai, Ojutai Dragonspeaker",
		ColorIdentity:   []string{"W", "U"},
		ThemeTags:       []string{"Artifacts Matter", "Counters Matter"},
		HasPartner:      true,
		HasPlainPartner: true,
	}
}

func hasNote(result *ScoreResult, note Note) bool {
	for _, n := range result.Notes {
		if n == note {
			return true
		}
	}
	return false
}

func TestScorePartnerWithBeatsPlainPartner(t *testing.T) {
	ctx := emptyContext()

	withScore := ScorePartnerCandidate(testAkiri(), testSilas(), ctx)
	if withScore.Mode != commander.ModePartnerWith {
		t.Fatalf("mode = %v, want partner_with", withScore.Mode)
	}
	if !hasNote(withScore, NotePartnerWithMatch) {
		t.Error("expected partner_with_match note")
	}

	plainScore := ScorePartnerCandidate(testAkiri(), testIshai(), ctx)
	if plainScore.Mode != commander.ModePartner {
		t.Fatalf("mode = %v, want partner", plainScore.Mode)
	}
	if !hasNote(plainScore, NoteSharedPartnerKeyword) {
		t.Error("expected shared_partner_keyword note")
	}

	if withScore.Score <= plainScore.Score {
		t.Errorf("partner-with score %.3f should beat plain partner score %.3f",
			withScore.Score, plainScore.Score)
	}
}

func TestScoreModeAgreementBothDirections(t *testing.T) {
	ctx := emptyContext()
	ab := ScorePartnerCandidate(testAkiri(), testIshai(), ctx)
	ba := ScorePartnerCandidate(testIshai(), testAkiri(), ctx)
	if ab.Mode != ba.Mode {
		t.Errorf("mode disagreement: %v vs %v", ab.Mode, ba.Mode)
	}
}

func TestScoreBackgroundIgnoresPartnerKeywords(t *testing.T) {
	ctx := emptyContext()
	chooser := &commander.Commander{Name: "Wilson, Refined Grizzly", SupportsBackgrounds: true}
	background := &commander.Commander{
		Name:            "Raised by Giants",
		IsBackground:    true,
		HasPartner:      true,
		HasPlainPartner: true,
	}

	result := ScorePartnerCandidate(chooser, background, ctx)
	if result.Mode != commander.ModeBackground {
		t.Fatalf("mode = %v, want background", result.Mode)
	}
	if !hasNote(result, NoteBackgroundCompatible) {
		t.Error("expected background_compatible note")
	}
	if hasNote(result, NoteSharedPartnerKeyword) {
		t.Error("background pairing must not carry partner keyword notes")
	}
}

func TestScoreRestrictedLabels(t *testing.T) {
	ctx := emptyContext()
	glenn := &commander.Commander{Name: "Glenn", HasPartner: true, RestrictedPartnerLabels: []string{"Survivors"}}
	daryl := &commander.Commander{Name: "Daryl", HasPartner: true, RestrictedPartnerLabels: []string{"Survivors"}}
	strahd := &commander.Commander{Name: "Strahd", HasPartner: true, RestrictedPartnerLabels: []string{"Vampires"}}

	matched := ScorePartnerCandidate(glenn, daryl, ctx)
	if matched.Mode != commander.ModePartner {
		t.Fatalf("mode = %v, want partner", matched.Mode)
	}
	if !hasNote(matched, NoteRestrictedLabelMatch) {
		t.Error("expected restricted_label_match note")
	}

	mismatched := ScorePartnerCandidate(glenn, strahd, ctx)
	if mismatched.Mode != commander.ModeNone {
		t.Fatalf("mode = %v, want none", mismatched.Mode)
	}
	if mismatched.Score != 0 {
		t.Errorf("incompatible pair score = %.3f, want 0", mismatched.Score)
	}
	if len(mismatched.Notes) != 0 {
		t.Errorf("incompatible pair has notes: %v", mismatched.Notes)
	}
}

func TestScoreOverlapIgnoresNoiseAndSaturates(t *testing.T) {
	ctx := emptyContext()

	// Only noise themes in common: no overlap component.
	a := &commander.Commander{
		Name:            "A",
		HasPartner:      true,
		HasPlainPartner: true,
		ThemeTags:       []string{"Legends Matter", "Partner", "Historics Matter"},
	}
	b := &commander.Commander{
		Name:            "B",
		HasPartner:      true,
		HasPlainPartner: true,
		ThemeTags:       []string{"Legends Matter", "Partner"},
	}
	result := ScorePartnerCandidate(a, b, ctx)
	if result.Components[ComponentOverlap] != 0 {
		t.Errorf("overlap from noise-only themes = %.3f, want 0", result.Components[ComponentOverlap])
	}
	if hasNote(result, NoteThemeOverlap) {
		t.Error("noise-only overlap must not produce a theme_overlap note")
	}

	// Diminishing returns: the second shared theme is worth less than the
	// first, and the component never reaches its weight.
	one := ScorePartnerCandidate(
		&commander.Commander{Name: "C", HasPartner: true, HasPlainPartner: true, ThemeTags: []string{"Tokens"}},
		&commander.Commander{Name: "D", HasPartner: true, HasPlainPartner: true, ThemeTags: []string{"Tokens"}},
		ctx)
	two := ScorePartnerCandidate(
		&commander.Commander{Name: "E", HasPartner: true, HasPlainPartner: true, ThemeTags: []string{"Tokens", "Sacrifice"}},
		&commander.Commander{Name: "F", HasPartner: true, HasPlainPartner: true, ThemeTags: []string{"Tokens", "Sacrifice"}},
		ctx)

	first := one.Components[ComponentOverlap]
	gain := two.Components[ComponentOverlap] - first
	if first <= 0 {
		t.Fatal("expected positive overlap for one shared theme")
	}
	if gain <= 0 || gain >= first {
		t.Errorf("second theme gain %.4f should be positive but below first theme's %.4f", gain, first)
	}
	if two.Components[ComponentOverlap] >= overlapWeight {
		t.Errorf("overlap component %.4f must stay below its weight %.2f",
			two.Components[ComponentOverlap], overlapWeight)
	}
}

func TestScoreDatasetComponentSaturates(t *testing.T) {
	pairings := NewPairingIndex()
	pairings.Add(commander.ModePartnerWith, "Akiri, Line-Slinger", "Silas Renn, Seeker Adept", 40)
	ctx := NewContext(nil, pairings)

	popular := ScorePartnerCandidate(testAkiri(), testSilas(), ctx)
	if !hasNote(popular, NoteObservedPairing) {
		t.Fatal("expected observed_pairing note")
	}
	dataset := popular.Components[ComponentDataset]
	if dataset <= 0 || dataset >= datasetWeight {
		t.Errorf("dataset component %.4f must be positive and below its weight %.2f", dataset, datasetWeight)
	}

	unseen := ScorePartnerCandidate(testAkiri(), testSilas(), emptyContext())
	if popular.Score <= unseen.Score {
		t.Errorf("observed pairing %.3f should outrank unseen pairing %.3f", popular.Score, unseen.Score)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.3, 1},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%.2f) = %.2f, want %.2f", tt.in, got, tt.want)
		}
	}
}

func TestNoteLabelsAreTotal(t *testing.T) {
	notes := []Note{
		NotePartnerWithMatch, NoteBackgroundCompatible, NoteDoctorCompanionMatch,
		NoteRestrictedLabelMatch, NoteSharedPartnerKeyword, NoteThemeOverlap,
		NoteObservedPairing,
	}
	for _, note := range notes {
		if note.Label() == string(note) {
			t.Errorf("note %q has no display label", note)
		}
	}
}
