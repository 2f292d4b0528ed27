package commander

import (
	"reflect"
	"testing"
)

func TestCanonicalColors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"already canonical", []string{"W", "U"}, []string{"W", "U"}},
		{"out of order", []string{"G", "R", "U"}, []string{"U", "R", "G"}},
		{"duplicates and lowercase", []string{"r", "R", "w"}, []string{"W", "R"}},
		{"unknown letters dropped", []string{"W", "X", "C"}, []string{"W"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalColors(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CanonicalColors(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnionColorIdentity(t *testing.T) {
	got := UnionColorIdentity([]string{"R", "W"}, []string{"U", "B"})
	want := []string{"W", "U", "B", "R"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("union = %v, want %v", got, want)
	}

	// Union is commutative.
	flipped := UnionColorIdentity([]string{"U", "B"}, []string{"R", "W"})
	if !reflect.DeepEqual(got, flipped) {
		t.Errorf("union not commutative: %v vs %v", got, flipped)
	}

	// Colorless on one side keeps the other side intact.
	colorless := UnionColorIdentity(nil, []string{"G", "W"})
	if !reflect.DeepEqual(colorless, []string{"W", "G"}) {
		t.Errorf("colorless union = %v, want [W G]", colorless)
	}
}

func TestColorCodeAndLabel(t *testing.T) {
	tests := []struct {
		colors    []string
		wantCode  string
		wantLabel string
	}{
		{nil, "C", "Colorless"},
		{[]string{"W"}, "W", "White"},
		{[]string{"U", "W"}, "WU", "Azorius"},
		{[]string{"B", "R"}, "BR", "Rakdos"},
		{[]string{"G", "W"}, "WG", "Selesnya"},
		{[]string{"B", "U", "W"}, "WUB", "Esper"},
		{[]string{"R", "W", "U"}, "WUR", "Jeskai"},
		{[]string{"G", "U", "R"}, "URG", "Temur"},
		{[]string{"W", "U", "B", "R"}, "WUBR", "Artifice"},
		{[]string{"U", "B", "R", "G"}, "UBRG", "Chaos"},
		{[]string{"W", "B", "R", "G"}, "WBRG", "Aggression"},
		{[]string{"W", "U", "R", "G"}, "WURG", "Altruism"},
		{[]string{"W", "U", "B", "G"}, "WUBG", "Growth"},
		{[]string{"W", "U", "B", "R", "G"}, "WUBRG", "Five-Color"},
	}

	for _, tt := range tests {
		if got := ColorCode(tt.colors); got != tt.wantCode {
			t.Errorf("ColorCode(%v) = %q, want %q", tt.colors, got, tt.wantCode)
		}
		if got := ColorLabel(tt.colors); got != tt.wantLabel {
			t.Errorf("ColorLabel(%v) = %q, want %q", tt.colors, got, tt.wantLabel)
		}
	}
}

func TestColorDelta(t *testing.T) {
	added := ColorDelta([]string{"R", "W"}, []string{"W", "U", "B", "R"})
	want := []string{"Blue", "Black"}
	if !reflect.DeepEqual(added, want) {
		t.Errorf("ColorDelta = %v, want %v", added, want)
	}

	if added := ColorDelta([]string{"W", "U"}, []string{"W", "U"}); len(added) != 0 {
		t.Errorf("expected empty delta, got %v", added)
	}
}
