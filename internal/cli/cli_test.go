// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"set", "storage.backend", "sqlite", "--json", "--dir=/tmp/x"})

	if p.Subcommand() != "set" {
		t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), "set")
	}
	if p.Positional(1) != "storage.backend" {
		t.Errorf("Positional(1) = %q", p.Positional(1))
	}
	if p.Positional(2) != "sqlite" {
		t.Errorf("Positional(2) = %q", p.Positional(2))
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) should be true")
	}
	if p.Flag("dir") != "/tmp/x" {
		t.Errorf("Flag(dir) = %q", p.Flag("dir"))
	}
	if p.Positional(9) != "" {
		t.Error("out-of-bounds positional should be empty")
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--verbose=true"})
	if p.BoolFlag("json") {
		t.Error("--json=false should parse as false")
	}
	if !p.BoolFlag("verbose") {
		t.Error("--verbose=true should parse as true")
	}
}

func TestArgParserFlagWithValue(t *testing.T) {
	p := NewArgParser([]string{"--backend", "sqlite"})
	if p.Flag("backend") != "sqlite" {
		t.Errorf("Flag(backend) = %q", p.Flag("backend"))
	}
	if p.PositionalCount() != 0 {
		t.Errorf("value should not count as positional, got %d", p.PositionalCount())
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"15", 15, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parsePositiveInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
