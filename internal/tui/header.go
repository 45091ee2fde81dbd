package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdev/internal/format"
)

// HeaderModel is the top bar: product name, build version and how long the
// explorer has held the session.
type HeaderModel struct {
	openedAt time.Time
	version  string
	width    int
}

// NewHeaderModel starts the session timer at the current time.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{openedAt: time.Now(), version: version}
}

func (h *HeaderModel) SetWidth(w int) { h.width = w }

func (h HeaderModel) View() string {
	name := "fibdev explorer"
	if h.version != "" && h.version != "dev" {
		name += " " + h.version
	}
	held := format.FormatExecutionDuration(time.Since(h.openedAt))
	row := titleStyle.Render(name) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render("Session: "+held)

	pad := max(h.width-2-lipgloss.Width(row), 0)
	return headerStyle.Render(row + strings.Repeat(" ", pad))
}
