// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides durable client-local key-value storage.
//
// The banking client persists exactly one record (the current session),
// but the capability is expressed as a small injected interface so the
// session layer is testable without touching the filesystem.
package kv

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a durable key-value persistence capability.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist; err is reserved for I/O failures.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// =============================================================================
// ERRORS
// =============================================================================

// StoreError represents a storage-related error.
type StoreError struct {
	Op      string // "get", "set", "delete", "open"
	Key     string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Cause
}
