// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the banking TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND NAVIGATION STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	NavItem        lipgloss.Style
	NavItemActive  lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox       lipgloss.Style
	FormTitle     lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldFocused  lipgloss.Style
	FieldBlurred  lipgloss.Style
	ButtonIdle    lipgloss.Style
	ButtonFocused lipgloss.Style
	Hint          lipgloss.Style

	// ==========================================================================
	// STATUS MESSAGE STYLES
	// ==========================================================================

	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusBar     lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// ACCOUNT AND TABLE STYLES
	// ==========================================================================

	BalanceCard   lipgloss.Style
	BalanceAmount lipgloss.Style
	BalanceLabel  lipgloss.Style
	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	CreditAmount  lipgloss.Style
	DebitAmount   lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeLogo     lipgloss.Style
	WelcomeVersion  lipgloss.Style
	WelcomePressKey lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and navigation
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.NavItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.NavItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 2)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Cyan)

	t.FieldBlurred = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.ButtonIdle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 3)

	t.ButtonFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Bold(true).
		Padding(0, 3)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status messages
	t.StatusSuccess = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.StatusError = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Account and tables
	t.BalanceCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Emerald).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.BalanceAmount = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.BalanceLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.CreditAmount = lipgloss.NewStyle().
		Foreground(Emerald)

	t.DebitAmount = lipgloss.NewStyle().
		Foreground(Rose)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 6).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.WelcomeVersion = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Blink(true)

	// Resize-aware styles get widths applied in SetSize.
}

// SetSize updates the theme's layout dimensions and resizes the styles that
// span the full terminal width.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height

	if width > 0 {
		t.Header = t.Header.Width(width - 2)
		t.StatusBar = t.StatusBar.Width(width)
	}
}
