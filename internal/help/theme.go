package help

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
)

var (
	Charple     = lipgloss.Color("#6B50FF")
	Squid       = lipgloss.Color("#858392")
	Smoke       = lipgloss.Color("#BFBCC8")
	Guac        = lipgloss.Color("#12C78F")
	BrightGreen = lipgloss.Color("#A6E22E")
	DarkGreen   = lipgloss.Color("#5F8700")
)

// ColorScheme defines colors for the report elements
type ColorScheme struct {
	Heading color.Color
	Success color.Color
	Error   color.Color
	Muted   color.Color
}

// Styles contains the lipgloss styles shared by commands and reporting
type Styles struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultColorScheme returns a color scheme adapted from charm fang theme
func DefaultColorScheme(c lipgloss.LightDarkFunc) ColorScheme {
	return ColorScheme{
		Heading: Charple,
		Success: c(lipgloss.Color("#0CB37F"), Guac),
		Error:   c(lipgloss.Color("#D70000"), lipgloss.Color("#FF5F87")),
		Muted:   c(Smoke, Squid),
	}
}

// NewStyles creates a new Styles instance from a color scheme
func NewStyles(scheme ColorScheme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().
			Foreground(scheme.Heading).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(scheme.Success),
		Error: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(scheme.Muted).
			Faint(true),
	}
}

// DefaultStyles returns the default styled theme
func DefaultStyles() Styles {
	return NewStyles(DefaultColorScheme(lipgloss.LightDark(lipgloss.HasDarkBackground(os.Stdin, os.Stdout))))
}
