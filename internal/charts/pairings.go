// Package charts renders interactive HTML charts for suggestion results.
package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mtgkit/edh-companion/internal/commander"
	"github.com/mtgkit/edh-companion/internal/suggestions"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string // Chart title
	Subtitle   string // Chart subtitle
	Width      string // Chart width (e.g., "900px")
	Height     string // Chart height (e.g., "500px")
	Theme      string // Chart theme
	ShowLegend bool   // Show legend
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
	}
}

// modeColors keeps each pairing mode visually stable across renders.
var modeColors = map[commander.PartnerMode]string{
	commander.ModePartnerWith:     "#5470C6",
	commander.ModePartner:         "#91CC75",
	commander.ModeDoctorCompanion: "#FAC858",
	commander.ModeBackground:      "#EE6666",
}

// RenderSuggestionChart creates a bar chart of suggestion scores, one series
// per pairing mode, and writes it as an HTML file.
func RenderSuggestionChart(result *suggestions.Result, config ChartConfig, outputPath string) error {
	if result == nil || result.Total == 0 {
		return fmt.Errorf("no suggestions to chart")
	}

	bar := charts.NewBar()

	title := config.Title
	if title == "" {
		title = fmt.Sprintf("Partner suggestions for %s", result.DisplayName)
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	// One X slot per suggestion, grouped by mode in precedence order.
	var xLabels []string
	for _, mode := range commander.ModePrecedence {
		for _, s := range result.ByMode[mode] {
			xLabels = append(xLabels, s.DisplayName)
		}
	}
	bar.SetXAxis(xLabels)

	// Each mode gets its own series so the legend doubles as a mode filter.
	// Slots belonging to other modes hold nil values.
	offset := 0
	for _, mode := range commander.ModePrecedence {
		group := result.ByMode[mode]
		if len(group) == 0 {
			continue
		}

		yData := make([]opts.BarData, len(xLabels))
		for i, s := range group {
			yData[offset+i] = opts.BarData{Value: s.ScorePercent}
		}
		offset += len(group)

		bar.AddSeries(mode.Label(), yData).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: modeColors[mode],
				}),
			)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
