// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/gateway"
	"github.com/jeranaias/securebank-tui/internal/kv"
	"github.com/jeranaias/securebank-tui/internal/routes"
	"github.com/jeranaias/securebank-tui/internal/session"
	"github.com/jeranaias/securebank-tui/internal/txn"
)

// nopGateway satisfies txn.Gateway without touching the network.
type nopGateway struct{}

func (nopGateway) LoginCustomer(context.Context, string, string) (gateway.Customer, error) {
	return gateway.Customer{}, nil
}
func (nopGateway) RegisterCustomer(_ context.Context, c gateway.Customer) (gateway.Customer, error) {
	return c, nil
}
func (nopGateway) UpdateCustomer(_ context.Context, c gateway.Customer) (gateway.Customer, error) {
	return c, nil
}
func (nopGateway) ListCustomers(context.Context) ([]gateway.Customer, error) { return nil, nil }
func (nopGateway) DeleteCustomer(context.Context, string) error              { return nil }
func (nopGateway) Deposit(context.Context, string, float64) (float64, error) { return 0, nil }
func (nopGateway) Withdraw(context.Context, string, float64) (float64, error) {
	return 0, nil
}
func (nopGateway) GetAccount(context.Context, string) (gateway.Account, error) {
	return gateway.Account{}, nil
}
func (nopGateway) CheckBalance(context.Context, string) (float64, error) { return 0, nil }
func (nopGateway) UpdateBalance(context.Context, string, float64) (gateway.Account, error) {
	return gateway.Account{}, nil
}
func (nopGateway) TransactionHistory(context.Context, string) ([]gateway.Transaction, error) {
	return nil, nil
}
func (nopGateway) CalculateInterest(context.Context, string, float64, int) (float64, error) {
	return 0, nil
}
func (nopGateway) SendNotification(context.Context, string, string) (string, error) {
	return "", nil
}

func newTestModel() (*Model, *session.Store) {
	sessions := session.NewStore(kv.NewMemStore())
	ctrl := txn.NewController(sessions, nopGateway{})
	return New(sessions, ctrl, "test"), sessions
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestHomeMenuNavigation(t *testing.T) {
	m, _ := newTestModel()

	m.Update(keyRune('l'))
	if m.page != routes.PathLogin {
		t.Errorf("page = %q, want %q", m.page, routes.PathLogin)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != routes.PathHome {
		t.Errorf("esc should return home, got %q", m.page)
	}

	m.Update(keyRune('r'))
	if m.page != routes.PathRegister {
		t.Errorf("page = %q, want %q", m.page, routes.PathRegister)
	}
}

func TestGuardBlocksDirectNavigation(t *testing.T) {
	m, _ := newTestModel()

	// Anonymous navigation to a protected page lands on login instead.
	m.navigate(routes.PathDashboard)
	if m.page != routes.PathLogin {
		t.Errorf("page = %q, want %q", m.page, routes.PathLogin)
	}
}

func TestLoginResultNavigatesToDashboard(t *testing.T) {
	m, sessions := newTestModel()
	m.navigate(routes.PathLogin)

	m.Update(txn.LoginResultMsg{Customer: gateway.Customer{
		CustomerID: "CUST1",
		AccountNo:  "ACC456",
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       gateway.RoleCustomer,
	}})

	if m.page != routes.PathDashboard {
		t.Errorf("page = %q, want %q", m.page, routes.PathDashboard)
	}
	if !sessions.IsAuthenticated() {
		t.Error("session should be installed after login")
	}
}

func TestAdminLoginRejectsCustomerRole(t *testing.T) {
	m, sessions := newTestModel()
	m.navigate(routes.PathAdminLogin)

	m.Update(txn.LoginResultMsg{Customer: gateway.Customer{
		CustomerID: "CUST1",
		Name:       "Alice",
		Role:       gateway.RoleCustomer,
	}})

	if sessions.IsAuthenticated() {
		t.Error("a customer identity must not survive the admin login page")
	}
	if m.page != routes.PathHome {
		t.Errorf("page = %q, want %q", m.page, routes.PathHome)
	}
	if m.notice == "" {
		t.Error("a notice should explain the rejection")
	}
}

func TestAdminLoginAcceptsAdminRole(t *testing.T) {
	m, sessions := newTestModel()
	m.navigate(routes.PathAdminLogin)

	m.Update(txn.LoginResultMsg{Customer: gateway.Customer{
		CustomerID: "ADM1",
		Name:       "Root",
		Role:       gateway.RoleAdmin,
	}})

	if !sessions.IsAdmin() {
		t.Fatal("admin session should be installed")
	}
	if m.page != routes.PathAdmin {
		t.Errorf("page = %q, want %q", m.page, routes.PathAdmin)
	}
}

func TestLogoutKeyReturnsHome(t *testing.T) {
	m, sessions := newTestModel()
	sessions.Login(session.Session{CustomerID: "CUST1", AccountNo: "ACC456", Role: session.RoleCustomer})
	m.navigate(routes.PathDashboard)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	if sessions.IsAuthenticated() {
		t.Error("session should be cleared")
	}
	if m.page != routes.PathHome {
		t.Errorf("page = %q, want %q", m.page, routes.PathHome)
	}
}

// =============================================================================
// VIEW STATE TESTS
// =============================================================================

func TestHistoryRefreshBuildsRows(t *testing.T) {
	m, sessions := newTestModel()
	sessions.Login(session.Session{CustomerID: "CUST1", AccountNo: "ACC456", Role: session.RoleCustomer})

	m.Update(txn.HistoryRefreshedMsg{Transactions: []gateway.Transaction{
		{ID: 1, Type: "deposit", Amount: 500, Timestamp: time.Now()},
		{ID: 2, Type: "withdraw", Amount: 200, Timestamp: time.Now().Add(-time.Hour)},
	}})

	if got := len(m.historyTable.Rows()); got != 2 {
		t.Errorf("history rows = %d, want 2", got)
	}
}

func TestViewRendersEveryPage(t *testing.T) {
	m, sessions := newTestModel()

	for _, page := range []string{routes.PathHome, routes.PathLogin, routes.PathAdminLogin, routes.PathRegister} {
		m.page = page
		if m.View() == "" {
			t.Errorf("page %q rendered empty", page)
		}
	}

	sessions.Login(session.Session{CustomerID: "CUST1", AccountNo: "ACC456", Name: "Alice", Role: session.RoleCustomer})
	m.syncHeader()
	for _, page := range []string{routes.PathDashboard, routes.PathAccount, routes.PathCustomer, routes.PathAdmin} {
		m.page = page
		if m.View() == "" {
			t.Errorf("page %q rendered empty", page)
		}
	}
}

func TestAccountTabCycling(t *testing.T) {
	m, sessions := newTestModel()
	sessions.Login(session.Session{CustomerID: "CUST1", AccountNo: "ACC456", Role: session.RoleCustomer})
	m.page = routes.PathAccount

	m.cycleTab(1)
	if m.tab != tabDeposit {
		t.Errorf("tab = %v, want deposit", m.tab)
	}

	// Customers never see the admin balance tab.
	for range m.visibleTabs() {
		if m.tab == tabBalance {
			t.Fatal("balance tab visible to a customer")
		}
		m.cycleTab(1)
	}
}
