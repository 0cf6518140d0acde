package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(48)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().MarginTop(1)
	overlay     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func themed(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func statusStyle(paused, diverged bool) lipgloss.Style {
	switch {
	case diverged:
		return themed(CurrentTheme.Error).Bold(true)
	case paused:
		return themed(CurrentTheme.Warning).Bold(true)
	}
	return themed(CurrentTheme.Success).Bold(true)
}

// GradientText colors each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	to, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLab(to, t).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return result.String()
}

// KeyHints renders "key desc" pairs as one line.
func KeyHints(pairs ...string) string {
	key := themed(CurrentTheme.Accent).Bold(true)
	desc := themed(CurrentTheme.Muted)
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, key.Render(pairs[i])+desc.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return themed(CurrentTheme.Muted).Render(left + " ◆ " + right)
}
