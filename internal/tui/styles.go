package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdev/internal/ui"
)

// Explorer styles, derived from the active ui theme by initTUIStyles.
var (
	panelStyle, headerStyle, titleStyle                lipgloss.Style
	versionStyle, elapsedStyle, labelStyle, valueStyle lipgloss.Style
	errorStyle, sparklineStyle                         lipgloss.Style
	statusHeldStyle, statusFreeStyle                   lipgloss.Style
	positionBarStyle, positionDimStyle                 lipgloss.Style
)

func init() { initTUIStyles() }

// initTUIStyles rebuilds the styles. Run calls it again once the theme has
// been chosen from flags and NO_COLOR.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = fg(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)
	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	labelStyle = fg(t.Dim)
	valueStyle = fg(t.Accent).Bold(true)
	errorStyle = fg(t.Error).Bold(true)
	sparklineStyle = fg(t.Info)

	statusHeldStyle = fg(t.Success).Bold(true)
	statusFreeStyle = fg(t.Warning).Bold(true)
	positionBarStyle = fg(t.Accent)
	positionDimStyle = fg(t.Dim)
}
