// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "state.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content = %q, want %q", data, `{"ok":true}`)
	}
}

func TestAtomicWriteFile_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	if err := AtomicWriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestFloatToString(t *testing.T) {
	if got := FloatToString(1500.5); got != "1500.50" {
		t.Errorf("FloatToString(1500.5) = %q, want %q", got, "1500.50")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"500", 500, true},
		{"1500.50", 1500.50, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-10", -10, true}, // sign validity is the caller's concern
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestParseInt64(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		valid bool
	}{
		{"9876543210", 9876543210, true},
		{"0", 0, true},
		{"", 0, false},
		{"12ab", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseInt64(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ParseInt64(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestInt64ToString(t *testing.T) {
	if got := Int64ToString(9876543210); got != "9876543210" {
		t.Errorf("Int64ToString = %q", got)
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := TruncateRunes(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcd", 2); got != "abcd" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}
