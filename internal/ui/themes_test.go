package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme state is global, so these tests do not run in parallel.

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitThemeNoColor(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	InitTheme(true)
	if ColorPrimary() != "" || ColorReset() != "" {
		t.Error("no-color theme should emit no escape codes")
	}
	if Paint(ColorError(), "x") != "x" {
		t.Errorf("Paint without color = %q", Paint(ColorError(), "x"))
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI theme should follow the no-color theme")
	}
}

func TestInitThemeEnv(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestPaint(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(DarkTheme)
	got := Paint(ColorSuccess(), "ok")
	want := DarkTheme.Success + "ok" + DarkTheme.Reset
	if got != want {
		t.Errorf("Paint = %q, want %q", got, want)
	}
}
