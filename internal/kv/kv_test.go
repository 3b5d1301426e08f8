// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"path/filepath"
	"testing"
)

// storeFactories builds one of each backend rooted in a temp dir.
func storeFactories(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStoreWithDir(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewFileStoreWithDir failed: %v", err)
	}

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"mem":    NewMemStore(),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("currentUser", []byte(`{"name":"Alice"}`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			got, found, err := store.Get("currentUser")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !found {
				t.Fatal("Get found = false, want true")
			}
			if string(got) != `{"name":"Alice"}` {
				t.Errorf("Get = %q, want %q", got, `{"name":"Alice"}`)
			}
		})
	}
}

func TestStore_Overwrite(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store.Set("currentUser", []byte("old"))
			store.Set("currentUser", []byte("new"))

			got, found, _ := store.Get("currentUser")
			if !found || string(got) != "new" {
				t.Errorf("Get = (%q, %v), want (new, true)", got, found)
			}
		})
	}
}

func TestStore_MissingKey(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get("nope")
			if err != nil {
				t.Fatalf("Get of missing key errored: %v", err)
			}
			if found {
				t.Error("Get found = true, want false")
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store.Set("currentUser", []byte("x"))
			if err := store.Delete("currentUser"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, found, _ := store.Get("currentUser"); found {
				t.Error("record still present after Delete")
			}

			// Deleting a missing key is not an error.
			if err := store.Delete("currentUser"); err != nil {
				t.Errorf("second Delete errored: %v", err)
			}
		})
	}
}

func TestFileStore_UnsafeKey(t *testing.T) {
	store, err := NewFileStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStoreWithDir failed: %v", err)
	}

	key := `weird/key:name`
	if err := store.Set(key, []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found, _ := store.Get(key)
	if !found || string(got) != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, found)
	}
}
