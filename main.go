// securebank TUI - A terminal client for the SecureBank portal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/cli"
	"github.com/jeranaias/securebank-tui/internal/config"
	"github.com/jeranaias/securebank-tui/internal/gateway"
	"github.com/jeranaias/securebank-tui/internal/kv"
	"github.com/jeranaias/securebank-tui/internal/session"
	"github.com/jeranaias/securebank-tui/internal/txn"
	"github.com/jeranaias/securebank-tui/internal/ui/portal"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdLogout:
		if err := cli.HandleLogout(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI wires the client together and starts the terminal interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	stateDir, err := cfg.StateDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := kv.Open(cfg.Storage.Backend, stateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session storage: %v\n", err)
		os.Exit(1)
	}

	sessions := session.NewStore(store)

	gw := gateway.NewClientWithConfig(&gateway.ClientConfig{
		CustomerBaseURL: cfg.API.CustomerBaseURL,
		AccountBaseURL:  cfg.API.AccountBaseURL,
		Timeout:         time.Duration(cfg.API.TimeoutSecs) * time.Second,
	})

	ctrl := txn.NewController(sessions, gw)
	m := portal.New(sessions, ctrl, Version)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running securebank: %v\n", err)
		os.Exit(1)
	}
}
