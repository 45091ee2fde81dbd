package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of ANSI escape sequences used by the line-oriented
// front ends (sweep report, REPL). Empty fields print nothing.
type Theme struct {
	Name      string
	Primary   string // headings and prompts
	Secondary string // labels and units
	Success   string
	Warning   string
	Error     string
	Info      string // delivered values and positions
	Bold      string
	Reset     string
}

const (
	escBold  = "\033[1m"
	escReset = "\033[0m"
)

// fg256 returns the escape sequence selecting foreground color n of the
// 256-color palette.
func fg256(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

func paletteTheme(name string, primary, secondary, success, warning, failure, info int) Theme {
	return Theme{
		Name:      name,
		Primary:   fg256(primary),
		Secondary: fg256(secondary),
		Success:   fg256(success),
		Warning:   fg256(warning),
		Error:     fg256(failure),
		Info:      fg256(info),
		Bold:      escBold,
		Reset:     escReset,
	}
}

var (
	// DarkTheme is the default and suits dark backgrounds.
	DarkTheme = paletteTheme("dark", 208, 245, 82, 220, 196, 39)
	// LightTheme uses deeper tones for light backgrounds.
	LightTheme = paletteTheme("light", 130, 240, 28, 136, 124, 27)
	// NoColorTheme emits no escape sequences.
	NoColorTheme = Theme{Name: "none"}

	themesByName = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// TUITheme is the lipgloss palette of the device explorer.
type TUITheme struct {
	Text, Border, Accent, Dim     lipgloss.TerminalColor
	Success, Warning, Error, Info lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the explorer palette whenever colors are on.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Dim:     lipgloss.Color("#666666"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// NoColorTUITheme leaves every element in the terminal's own colors.
	NoColorTUITheme = TUITheme{
		Text: lipgloss.NoColor{}, Border: lipgloss.NoColor{}, Accent: lipgloss.NoColor{}, Dim: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Warning: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Info: lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the explorer palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	currentTheme = t
	themeMu.Unlock()
}

// SetTheme selects "dark", "light" or "none". Unknown names select dark.
func SetTheme(name string) {
	t, ok := themesByName[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme disables colors when noColor is set or NO_COLOR is present in
// the environment, and selects the dark theme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
