// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"sync"

	"github.com/jeranaias/securebank-tui/internal/kv"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// PersistKey is the storage key for the persisted session record.
const PersistKey = "currentUser"

// subscriberBuffer is the per-subscriber channel capacity. A slow
// subscriber may miss intermediate values but never the latest one at
// subscribe time, and publishers never block.
const subscriberBuffer = 8

// Store holds the current authenticated session, persists it write-through,
// and publishes changes to subscribers with replay-latest semantics.
//
// The Store is thread-safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	current *Session
	persist kv.Store

	subscribers map[int]chan *Session
	nextSubID   int
}

// NewStore creates a session store backed by persist.
//
// The persisted record is read through once at construction. A corrupt or
// foreign record is silently discarded (and removed) so construction never
// fails on bad data; only the persistence layer itself can error.
func NewStore(persist kv.Store) *Store {
	s := &Store{
		persist:     persist,
		subscribers: make(map[int]chan *Session),
	}

	data, found, err := persist.Get(PersistKey)
	if err != nil || !found {
		return s
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.CustomerID == "" {
		// Corrupt record: start with no session.
		persist.Delete(PersistKey)
		return s
	}

	s.current = &sess
	return s
}

// =============================================================================
// MUTATION
// =============================================================================

// Login installs a fully-populated session. No validation happens here; the
// caller is assumed to have already authenticated against the server.
// The record is persisted before subscribers observe the change.
func (s *Store) Login(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.persist.Set(PersistKey, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted record and publishes no-session.
func (s *Store) Logout() error {
	if err := s.persist.Delete(PersistKey); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Current returns the in-memory session, or nil. The returned value is a
// copy; mutating it does not affect the store.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// IsAuthenticated reports whether a session is current.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// IsAdmin reports whether the current session has the admin role.
// False when no session is current.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Role == RoleAdmin
}

// AccountNo returns the current session's account number.
// ok is false when no session is current.
func (s *Store) AccountNo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.AccountNo, true
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Subscribe registers for session changes. The value in effect at subscribe
// time is delivered immediately, then every subsequent change (replay-latest,
// not just future events). The returned cancel func unregisters; emissions
// after cancel are dropped without error, so a torn-down view is safe.
func (s *Store) Subscribe() (<-chan *Session, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++

	ch := make(chan *Session, subscriberBuffer)
	s.subscribers[id] = ch

	// Replay the current value before any future change can land.
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// publishLocked fans the current value out to all subscribers.
// Sends are non-blocking: a full (stalled) subscriber drops the oldest
// buffered value rather than blocking login/logout.
func (s *Store) publishLocked() {
	for _, ch := range s.subscribers {
		v := s.snapshotLocked()
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// snapshotLocked copies the current session for publication.
func (s *Store) snapshotLocked() *Session {
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}
