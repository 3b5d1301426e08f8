// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/securebank-tui/internal/ui/styles"
)

// =============================================================================
// STATUS MESSAGE COMPONENT
// =============================================================================

// StatusMessage renders the transient success/error line shown under a form.
// The caller owns the visibility window; this component only draws whatever
// text is currently visible.
type StatusMessage struct {
	Width int
	theme *styles.Theme
}

// NewStatusMessage creates a status message renderer.
func NewStatusMessage(theme *styles.Theme) *StatusMessage {
	return &StatusMessage{Width: 80, theme: theme}
}

// SetWidth updates the available width.
func (s *StatusMessage) SetWidth(width int) {
	s.Width = width
}

// View renders the message with its shape indicator, or an empty spacer line
// when no message is visible, so forms do not jump vertically.
func (s *StatusMessage) View(text string, success bool) string {
	if text == "" {
		return ""
	}

	max := s.Width - 8
	if max > 10 && runewidth.StringWidth(text) > max {
		text = runewidth.Truncate(text, max, "…")
	}

	if success {
		return styles.RenderSuccess(text)
	}
	return styles.RenderError(text)
}

// =============================================================================
// SHORTCUT FOOTER
// =============================================================================

// Shortcut is one key hint in the footer.
type Shortcut struct {
	Key  string
	Desc string
}

// ShortcutBar renders the footer key hints.
type ShortcutBar struct {
	Width int
	theme *styles.Theme
}

// NewShortcutBar creates a footer renderer.
func NewShortcutBar(theme *styles.Theme) *ShortcutBar {
	return &ShortcutBar{Width: 80, theme: theme}
}

// SetWidth updates the available width.
func (b *ShortcutBar) SetWidth(width int) {
	b.Width = width
}

// View renders the hints, dropping entries from the right when space runs
// out.
func (b *ShortcutBar) View(shortcuts []Shortcut) string {
	var sb strings.Builder
	used := 0
	for i, s := range shortcuts {
		entry := s.Key + " " + s.Desc
		w := runewidth.StringWidth(entry) + 3
		if used+w > b.Width && i > 0 {
			break
		}
		if i > 0 {
			sb.WriteString("   ")
		}
		sb.WriteString(b.theme.ShortcutKey.Render(s.Key))
		sb.WriteString(" ")
		sb.WriteString(b.theme.ShortcutDesc.Render(s.Desc))
		used += w
	}
	return b.theme.StatusBar.Render(sb.String())
}
