package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lixenwraith/color-cycle/engine"
	"github.com/lixenwraith/color-cycle/input"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// graphWidth caps the plotted sample count
const graphWidth = 72

// renderHotkeys formats the hotkey help as an aligned two column table
func renderHotkeys(keys []input.Hotkey) string {
	width := 0
	for _, k := range keys {
		width = max(width, lipgloss.Width(k.Keys))
	}
	col := keyStyle.Width(width + 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hotkeys"))
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, col.Render(k.Keys), k.Description))
	}
	return panelStyle.Render(b.String())
}

// renderStats plots recent frame times and summarizes the run
func renderStats(stats *engine.Stats) string {
	sum := stats.Summary()
	if sum.Frames == 0 {
		return labelStyle.Render("no frames recorded")
	}

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + keyStyle.Render(value)
	}
	summary := strings.Join([]string{
		titleStyle.Render("Frame statistics"),
		line("frames", fmt.Sprintf("%d", sum.Frames)),
		line("achieved", fmt.Sprintf("%.1f fps", sum.AchievedFPS)),
		line("mean", sum.Mean.String()),
		line("p95", sum.P95.String()),
		line("max", sum.Max.String()),
		line("cells", fmt.Sprintf("%.1f per frame", sum.CellsPerFrame)),
	}, "\n")

	samples := stats.Samples()
	if len(samples) < 2 {
		return panelStyle.Render(summary)
	}
	graph := asciigraph.Plot(samples,
		asciigraph.Height(8),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("frame time (ms)"),
	)
	return panelStyle.Render(summary + "\n\n" + graph)
}
