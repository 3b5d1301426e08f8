// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"os"
	"path/filepath"
)

// Open builds the store for the configured backend. An empty backend means
// the default file store. The dir applies to disk-backed stores; the memory
// backend ignores it.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "file":
		if dir == "" {
			return NewFileStore()
		}
		return NewFileStoreWithDir(dir)
	case "sqlite":
		if dir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, &StoreError{Op: "open", Message: "failed to resolve home directory", Cause: err}
			}
			dir = filepath.Join(homeDir, ".securebank", "state")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StoreError{Op: "open", Message: "failed to create storage directory", Cause: err}
		}
		return NewSQLiteStore(filepath.Join(dir, "state.db"))
	case "memory":
		return NewMemStore(), nil
	default:
		return nil, &StoreError{
			Op:      "open",
			Message: "unknown storage backend " + backend,
		}
	}
}
