// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for securebank.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jeranaias/securebank-tui/internal/config"
	"github.com/jeranaias/securebank-tui/internal/kv"
	"github.com/jeranaias/securebank-tui/internal/session"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConfig
	CmdLogout
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool
	Verbose bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `securebank - terminal client for the SecureBank portal

Usage:
  securebank                     Start the banking TUI (default)
  securebank config [show|set|path]  Configuration management
  securebank logout              Clear the saved session
  securebank version, -v         Show version information
  securebank help, -h            Show this help

Config Commands:
  securebank config show             Print the effective configuration
  securebank config path             Print the config file location
  securebank config set KEY VALUE    Persist a configuration value
    Keys: api.customer_base_url, api.account_base_url,
          api.timeout_secs, storage.backend, storage.dir

Environment:
  SECUREBANK_CUSTOMER_URL        Override the customer service URL
  SECUREBANK_ACCOUNT_URL         Override the account service URL
  SECUREBANK_STORAGE_BACKEND     file | sqlite | memory
  SECUREBANK_STORAGE_DIR         Override the state directory
`

// Parse inspects os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	raw := os.Args[1:]
	args := Args{Raw: raw}

	if len(raw) == 0 {
		return CmdTUI, args
	}

	parser := NewArgParser(raw)
	args.JSON = parser.BoolFlag("json")
	args.Verbose = parser.BoolFlag("verbose")

	switch parser.Positional(0) {
	case "config":
		args.Subcommand = parser.Positional(1)
		args.ConfigKey = parser.Positional(2)
		args.ConfigVal = parser.Positional(3)
		return CmdConfig, args
	case "logout":
		return CmdLogout, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	}

	switch {
	case parser.BoolFlag("version") || parser.BoolFlag("v"):
		return CmdVersion, args
	case parser.BoolFlag("help") || parser.BoolFlag("h"):
		return CmdHelp, args
	}

	return CmdTUI, args
}

// =============================================================================
// HANDLERS
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf(`{"version":%q,"commit":%q,"built":%q,"go":%q}`+"\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	fmt.Printf("securebank %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
	fmt.Printf("  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleConfig implements the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	default:
		return fmt.Errorf("unknown config subcommand %q (expected show, set, or path)", args.Subcommand)
	}
}

func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("[api]")
	fmt.Printf("  customer_base_url = %s\n", cfg.API.CustomerBaseURL)
	fmt.Printf("  account_base_url  = %s\n", cfg.API.AccountBaseURL)
	fmt.Printf("  timeout_secs      = %d\n", cfg.API.TimeoutSecs)
	fmt.Println("[storage]")
	fmt.Printf("  backend = %s\n", cfg.Storage.Backend)
	if cfg.Storage.Dir != "" {
		fmt.Printf("  dir     = %s\n", cfg.Storage.Dir)
	}
	return nil
}

func configSet(key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: securebank config set KEY VALUE")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "api.customer_base_url":
		cfg.API.CustomerBaseURL = value
	case "api.account_base_url":
		cfg.API.AccountBaseURL = value
	case "api.timeout_secs":
		secs, err := parsePositiveInt(value)
		if err != nil {
			return fmt.Errorf("api.timeout_secs: %w", err)
		}
		cfg.API.TimeoutSecs = secs
	case "storage.backend":
		cfg.Storage.Backend = value
	case "storage.dir":
		cfg.Storage.Dir = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("set %s = %s\n", key, value)
	return nil
}

// HandleLogout clears the persisted session without starting the TUI.
func HandleLogout(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	stateDir, err := cfg.StateDir()
	if err != nil {
		return err
	}

	store, err := kv.Open(cfg.Storage.Backend, stateDir)
	if err != nil {
		return err
	}
	sessions := session.NewStore(store)

	if !sessions.IsAuthenticated() {
		fmt.Println("No saved session.")
		return nil
	}
	if err := sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("must be a positive integer")
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return 0, fmt.Errorf("must be greater than 0")
	}
	return n, nil
}
