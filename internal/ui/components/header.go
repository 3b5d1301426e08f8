// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the banking TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/securebank-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with branding and signed-in identity
// =============================================================================

// Header is the title bar shown on every page.
type Header struct {
	Title    string // Brand title (default: "SecureBank")
	UserName string // Signed-in customer name, empty when anonymous
	Role     string // "customer" or "admin", empty when anonymous
	Width    int    // Available width
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "SecureBank",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetIdentity updates the signed-in identity. Empty values render the
// anonymous header.
func (h *Header) SetIdentity(name, role string) {
	h.UserName = name
	h.Role = role
}

// View renders the header bar.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	brand := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Indigo).
		Render("$ " + h.Title)

	identity := ""
	if h.UserName != "" {
		label := h.UserName
		if h.Role == "admin" {
			label += " (admin)"
		}
		identity = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(label)
	}

	// Space the brand and identity to the edges, measuring display cells so
	// wide runes do not skew the layout.
	gap := innerWidth - lipgloss.Width(brand) - lipgloss.Width(identity)
	if gap < 1 {
		gap = 1
	}
	line := brand + strings.Repeat(" ", gap) + identity

	return h.theme.Header.Width(width - 2).Render(line)
}

// =============================================================================
// NAVIGATION BAR
// =============================================================================

// NavItem is one entry in the navigation bar.
type NavItem struct {
	Label string
	Path  string
}

// NavBar renders the page tabs, highlighting the active path.
type NavBar struct {
	Items  []NavItem
	Active string
	Width  int
	theme  *styles.Theme
}

// NewNavBar creates a navigation bar over the given items.
func NewNavBar(theme *styles.Theme, items []NavItem) *NavBar {
	return &NavBar{Items: items, Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (n *NavBar) SetWidth(width int) {
	n.Width = width
}

// SetActive marks the item for the given path as selected.
func (n *NavBar) SetActive(path string) {
	n.Active = path
}

// View renders the bar, truncating labels when the terminal is narrow.
func (n *NavBar) View() string {
	if len(n.Items) == 0 {
		return ""
	}

	maxLabel := n.Width/len(n.Items) - 4
	if maxLabel < 4 {
		maxLabel = 4
	}

	parts := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		label := item.Label
		if runewidth.StringWidth(label) > maxLabel {
			label = runewidth.Truncate(label, maxLabel, "…")
		}
		if item.Path == n.Active {
			parts = append(parts, n.theme.NavItemActive.Render(label))
		} else {
			parts = append(parts, n.theme.NavItem.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
