// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"

	"github.com/jeranaias/securebank-tui/internal/gateway"
	"github.com/jeranaias/securebank-tui/internal/kv"
)

func testSession() Session {
	return Session{
		CustomerID: "CUST1",
		AccountNo:  "ACC456",
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       RoleCustomer,
	}
}

// =============================================================================
// LOGIN / LOGOUT TESTS
// =============================================================================

func TestStore_LoginThenCurrent(t *testing.T) {
	s := NewStore(kv.NewMemStore())

	if s.IsAuthenticated() {
		t.Fatal("fresh store should have no session")
	}

	if err := s.Login(testSession()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	cur := s.Current()
	if cur == nil {
		t.Fatal("Current() = nil after Login")
	}
	if *cur != testSession() {
		t.Errorf("Current() = %+v, want %+v", *cur, testSession())
	}
	if !s.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after Login")
	}
	if s.IsAdmin() {
		t.Error("IsAdmin() = true for customer role")
	}
	if no, ok := s.AccountNo(); !ok || no != "ACC456" {
		t.Errorf("AccountNo() = (%q, %v)", no, ok)
	}
}

func TestStore_Logout(t *testing.T) {
	store := kv.NewMemStore()
	s := NewStore(store)
	s.Login(testSession())

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if s.Current() != nil {
		t.Error("Current() should be nil after Logout")
	}
	if _, ok := s.AccountNo(); ok {
		t.Error("AccountNo() ok = true after Logout")
	}
	if _, found, _ := store.Get(PersistKey); found {
		t.Error("persisted record should be removed by Logout")
	}
}

func TestStore_IsAdmin(t *testing.T) {
	s := NewStore(kv.NewMemStore())
	sess := testSession()
	sess.Role = RoleAdmin
	s.Login(sess)

	if !s.IsAdmin() {
		t.Error("IsAdmin() = false for admin role")
	}
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestStore_PersistenceRoundTrip(t *testing.T) {
	store := kv.NewMemStore()

	s1 := NewStore(store)
	s1.Login(testSession())

	// Restart: a new store over the same persistence sees the session.
	s2 := NewStore(store)
	cur := s2.Current()
	if cur == nil {
		t.Fatal("session not restored after restart")
	}
	if *cur != testSession() {
		t.Errorf("restored session = %+v, want %+v", *cur, testSession())
	}
}

func TestStore_CorruptRecordDiscarded(t *testing.T) {
	store := kv.NewMemStore()
	store.Set(PersistKey, []byte(`{not json`))

	s := NewStore(store)
	if s.Current() != nil {
		t.Error("corrupt record should yield no session")
	}
	if _, found, _ := store.Get(PersistKey); found {
		t.Error("corrupt record should be removed")
	}
}

func TestStore_ForeignRecordDiscarded(t *testing.T) {
	store := kv.NewMemStore()
	// Parseable JSON that is not a session record.
	store.Set(PersistKey, []byte(`{"foo": "bar"}`))

	s := NewStore(store)
	if s.Current() != nil {
		t.Error("foreign record should yield no session")
	}
}

// =============================================================================
// SUBSCRIPTION TESTS
// =============================================================================

func recv(t *testing.T, ch <-chan *Session) *Session {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription value")
		return nil
	}
}

func TestStore_SubscribeReplaysCurrent(t *testing.T) {
	s := NewStore(kv.NewMemStore())
	s.Login(testSession())

	ch, cancel := s.Subscribe()
	defer cancel()

	got := recv(t, ch)
	if got == nil || got.CustomerID != "CUST1" {
		t.Errorf("replayed value = %+v, want current session", got)
	}
}

func TestStore_SubscribeReplaysNil(t *testing.T) {
	s := NewStore(kv.NewMemStore())

	ch, cancel := s.Subscribe()
	defer cancel()

	if got := recv(t, ch); got != nil {
		t.Errorf("replayed value = %+v, want nil", got)
	}
}

func TestStore_SubscribeForwardsChanges(t *testing.T) {
	s := NewStore(kv.NewMemStore())
	ch, cancel := s.Subscribe()
	defer cancel()

	recv(t, ch) // initial nil

	s.Login(testSession())
	if got := recv(t, ch); got == nil || got.AccountNo != "ACC456" {
		t.Errorf("change value = %+v, want logged-in session", got)
	}

	s.Logout()
	if got := recv(t, ch); got != nil {
		t.Errorf("change value = %+v, want nil after logout", got)
	}
}

func TestStore_PublishAfterCancelIsSafe(t *testing.T) {
	s := NewStore(kv.NewMemStore())
	_, cancel := s.Subscribe()
	cancel()
	cancel() // double-cancel is a no-op

	// Must not panic or block with a torn-down subscriber.
	s.Login(testSession())
	s.Logout()
}

func TestStore_SlowSubscriberNeverBlocksPublisher(t *testing.T) {
	s := NewStore(kv.NewMemStore())
	ch, cancel := s.Subscribe()
	defer cancel()

	// Never drain; publish far more than the buffer size.
	for i := 0; i < 100; i++ {
		if err := s.Login(testSession()); err != nil {
			t.Fatalf("Login %d failed: %v", i, err)
		}
	}
	_ = ch
}

// =============================================================================
// FROM CUSTOMER TESTS
// =============================================================================

func TestFromCustomer(t *testing.T) {
	c := gateway.Customer{
		CustomerID: "CUST1",
		AccountNo:  "ACC456",
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       "customer",
	}

	sess := FromCustomer(c)
	if sess.Role != RoleCustomer {
		t.Errorf("Role = %q, want customer", sess.Role)
	}

	c.Role = "admin"
	if FromCustomer(c).Role != RoleAdmin {
		t.Error("admin role not carried over")
	}

	// Unknown/empty roles default to customer, never admin.
	c.Role = ""
	if FromCustomer(c).Role != RoleCustomer {
		t.Error("empty role should default to customer")
	}
	c.Role = "superuser"
	if FromCustomer(c).Role != RoleCustomer {
		t.Error("unknown role should default to customer")
	}
}
