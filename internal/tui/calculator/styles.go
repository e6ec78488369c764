// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     calculator
// Description: Dark and light themes for the calculator TUI
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package calculator

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a monochrome color set
type Theme struct {
	Name     string
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Panel    lipgloss.Color
	Strong   lipgloss.Color
	OnStrong lipgloss.Color
	Error    lipgloss.Color
	Light    bool
}

var (
	// DarkTheme is white on the terminal background
	DarkTheme = Theme{
		Name:     "dark",
		Text:     lipgloss.Color("#F2F2F2"),
		Muted:    lipgloss.Color("#999999"),
		Panel:    lipgloss.Color("#1A1A1A"),
		Strong:   lipgloss.Color("#FFFFFF"),
		OnStrong: lipgloss.Color("#000000"),
		Error:    lipgloss.Color("#EF4444"),
	}

	// LightTheme is black on white panels
	LightTheme = Theme{
		Name:     "light",
		Text:     lipgloss.Color("#1A1A1A"),
		Muted:    lipgloss.Color("#666666"),
		Panel:    lipgloss.Color("#F2F2F2"),
		Strong:   lipgloss.Color("#000000"),
		OnStrong: lipgloss.Color("#FFFFFF"),
		Error:    lipgloss.Color("#B91C1C"),
		Light:    true,
	}
)

// Styles are the rendered styles for one theme
type Styles struct {
	Logo       lipgloss.Style
	Subtitle   lipgloss.Style
	Input      lipgloss.Style
	Error      lipgloss.Style
	Card       lipgloss.Style
	CardStrong lipgloss.Style
	CardLabel  lipgloss.Style
	Rate       lipgloss.Style
	Insight    lipgloss.Style
	Section    lipgloss.Style
	Muted      lipgloss.Style
	Status     lipgloss.Style
}

// NewStyles builds the styles for t
func NewStyles(t Theme) Styles {
	return Styles{
		Logo: lipgloss.NewStyle().
			Foreground(t.Strong).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Strong).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Card: lipgloss.NewStyle().
			Background(t.Panel).
			Foreground(t.Text).
			Padding(0, 2).
			MarginRight(1).
			Width(22),

		CardStrong: lipgloss.NewStyle().
			Background(t.Strong).
			Foreground(t.OnStrong).
			Bold(true).
			Padding(0, 2).
			MarginRight(1).
			Width(22),

		CardLabel: lipgloss.NewStyle().
			Faint(true),

		Rate: lipgloss.NewStyle().
			Foreground(t.Strong).
			Bold(true).
			MarginTop(1),

		Insight: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Strong).
			Foreground(t.Text).
			Italic(true).
			Padding(0, 1).
			MarginTop(1),

		Section: lipgloss.NewStyle().
			Foreground(t.Strong).
			Bold(true).
			Underline(true).
			MarginTop(1),

		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),

		Status: lipgloss.NewStyle().
			Foreground(t.Muted).
			MarginTop(1),
	}
}

// Logo
const Logo = "TaxWise NG"
