package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mtgkit/edh-companion/internal/commander"
	"github.com/mtgkit/edh-companion/internal/suggestions"
)

func TestRenderSuggestionChart(t *testing.T) {
	result := &suggestions.Result{
		Name:        "Akiri, Line-Slinger",
		DisplayName: "Akiri, Line-Slinger",
		ByMode: map[commander.PartnerMode][]*suggestions.Suggestion{
			commander.ModePartnerWith: {
				{Name: "Silas Renn, Seeker Adept", DisplayName: "Silas Renn, Seeker Adept", ScorePercent: 58},
			},
			commander.ModePartner: {
				{Name: "Ishai, Ojutai Dragonspeaker", DisplayName: "Ishai, Ojutai Dragonspeaker", ScorePercent: 33},
			},
		},
		Total: 2,
	}

	path := filepath.Join(t.TempDir(), "suggestions.html")
	if err := RenderSuggestionChart(result, DefaultChartConfig(), path); err != nil {
		t.Fatalf("RenderSuggestionChart: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "Silas Renn, Seeker Adept") {
		t.Error("chart missing suggestion name")
	}
	if !strings.Contains(html, "Partner suggestions for Akiri, Line-Slinger") {
		t.Error("chart missing default title")
	}
}

func TestRenderSuggestionChartEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")
	if err := RenderSuggestionChart(&suggestions.Result{}, DefaultChartConfig(), path); err == nil {
		t.Error("empty result should error")
	}
	if err := RenderSuggestionChart(nil, DefaultChartConfig(), path); err == nil {
		t.Error("nil result should error")
	}
}
