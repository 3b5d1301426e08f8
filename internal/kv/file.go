// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/securebank-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists each key as one JSON file under a base directory.
// Writes are atomic with fsync so a crash never leaves a partial record.
type FileStore struct {
	// BaseDir is the storage directory. Default: ~/.securebank/state/
	BaseDir string
}

// NewFileStore creates a file store rooted at the default state directory.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to resolve home directory", Cause: err}
	}
	return NewFileStoreWithDir(filepath.Join(homeDir, ".securebank", "state"))
}

// NewFileStoreWithDir creates a file store rooted at a custom directory.
func NewFileStoreWithDir(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to create storage directory", Cause: err}
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// Get returns the value for key, or found=false when no file exists.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &StoreError{Op: "get", Key: key, Message: "failed to read record", Cause: err}
	}
	return data, true, nil
}

// Set writes the value for key atomically.
func (s *FileStore) Set(key string, value []byte) error {
	if err := util.AtomicWriteFile(s.filePath(key), value, 0600); err != nil {
		return &StoreError{Op: "set", Key: key, Message: "failed to write record", Cause: err}
	}
	return nil
}

// Delete removes the record for key. Missing keys are ignored.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		return &StoreError{Op: "delete", Key: key, Message: "failed to remove record", Cause: err}
	}
	return nil
}

// filePath maps a key to its file. Keys are hex-encoded when they contain
// characters that are unsafe in filenames.
func (s *FileStore) filePath(key string) string {
	name := key
	if strings.ContainsAny(key, `/\:*?"<>|`) || key == "" {
		name = "x" + hex.EncodeToString([]byte(key))
	}
	return filepath.Join(s.BaseDir, name+".json")
}
