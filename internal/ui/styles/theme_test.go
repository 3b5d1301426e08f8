// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Styles must render without panicking even at zero size.
	_ = theme.Header.Render("SecureBank")
	_ = theme.StatusSuccess.Render("ok")
	_ = theme.TableSelected.Render("row")
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("size = (%d, %d), want (120, 40)", theme.Width, theme.Height)
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	if s := RenderSuccess("saved"); !strings.Contains(s, "[OK]") {
		t.Errorf("success indicator missing: %q", s)
	}
	if s := RenderError("failed"); !strings.Contains(s, "[X]") {
		t.Errorf("error indicator missing: %q", s)
	}
	if s := RenderStatus(false, "nope"); !strings.Contains(s, "[X]") {
		t.Errorf("RenderStatus(false) should use the error indicator: %q", s)
	}
}
