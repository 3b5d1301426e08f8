// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/gateway"
	"github.com/jeranaias/securebank-tui/internal/routes"
	"github.com/jeranaias/securebank-tui/internal/txn"
	"github.com/jeranaias/securebank-tui/internal/ui/components"
	"github.com/jeranaias/securebank-tui/internal/util"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.nav.SetWidth(msg.Width)
		m.statusMsg.SetWidth(msg.Width)
		m.footer.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)

	// Controller completions
	case txn.LoginResultMsg:
		return m.handleLoginResult(msg)
	case txn.RegisterResultMsg:
		cmd := m.ctrl.HandleRegister(msg)
		if msg.Err == nil {
			m.registerForm.reset()
			return m, tea.Batch(cmd, m.navigate(routes.PathLogin))
		}
		return m, cmd
	case txn.ProfileUpdatedMsg:
		cmd := m.ctrl.HandleProfileUpdated(msg)
		if msg.Err == nil {
			m.editProfile = false
			m.syncHeader()
		}
		return m, cmd
	case txn.DepositResultMsg:
		cmd := m.ctrl.HandleDeposit(msg)
		if msg.Err == nil {
			m.depositForm.reset()
		}
		return m, cmd
	case txn.WithdrawResultMsg:
		cmd := m.ctrl.HandleWithdraw(msg)
		if msg.Err == nil {
			m.withdrawForm.reset()
		}
		return m, cmd
	case txn.UpdateBalanceResultMsg:
		cmd := m.ctrl.HandleUpdateBalance(msg)
		if msg.Err == nil {
			m.balanceForm.reset()
		}
		return m, cmd
	case txn.InterestResultMsg:
		return m, m.ctrl.HandleInterest(msg)
	case txn.NotifyResultMsg:
		cmd := m.ctrl.HandleNotify(msg)
		if msg.Err == nil {
			m.notifyForm.reset()
		}
		return m, cmd
	case txn.AccountRefreshedMsg:
		return m, m.ctrl.HandleAccountRefreshed(msg)
	case txn.BalanceRefreshedMsg:
		return m, m.ctrl.HandleBalanceRefreshed(msg)
	case txn.HistoryRefreshedMsg:
		cmd := m.ctrl.HandleHistoryRefreshed(msg)
		m.historyTable.SetRows(m.historyRows())
		return m, cmd
	case txn.RosterMsg:
		cmd := m.ctrl.HandleRoster(msg)
		m.rosterTable.SetRows(m.rosterRows())
		return m, cmd
	case txn.CustomerDeletedMsg:
		return m, m.ctrl.HandleCustomerDeleted(msg)
	case txn.StatusExpiredMsg:
		m.ctrl.HandleStatusExpired(msg)
		return m, nil
	}

	return m, nil
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings run before page-local handling.
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout):
		if m.sessions.IsAuthenticated() {
			return m, m.logout()
		}
	}

	switch m.page {
	case routes.PathHome:
		return m.updateHome(msg)
	case routes.PathLogin:
		return m.updateLogin(msg)
	case routes.PathAdminLogin:
		return m.updateAdminLogin(msg)
	case routes.PathRegister:
		return m.updateRegister(msg)
	case routes.PathDashboard:
		return m.updateDashboard(msg)
	case routes.PathAccount:
		return m.updateAccount(msg)
	case routes.PathCustomer:
		return m.updateProfile(msg)
	case routes.PathAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l":
		return m, m.navigate(routes.PathLogin)
	case "r":
		return m, m.navigate(routes.PathRegister)
	case "a":
		return m, m.navigate(routes.PathAdminLogin)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m, m.navigate(routes.PathHome)
	}
	return m, m.updateForm(&m.loginForm, msg, func() tea.Cmd {
		return m.ctrl.SubmitLogin(m.loginForm.value(0), m.loginForm.rawValue(1))
	})
}

func (m *Model) updateAdminLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m, m.navigate(routes.PathHome)
	}
	return m, m.updateForm(&m.adminForm, msg, func() tea.Cmd {
		return m.ctrl.SubmitLogin(m.adminForm.value(0), m.adminForm.rawValue(1))
	})
}

func (m *Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m, m.navigate(routes.PathHome)
	}
	return m, m.updateForm(&m.registerForm, msg, func() tea.Cmd {
		phone, _ := util.ParseInt64(m.registerForm.value(4))
		return m.ctrl.SubmitRegister(gateway.Customer{
			Name:        m.registerForm.value(0),
			Email:       m.registerForm.value(1),
			Password:    m.registerForm.rawValue(2),
			Address:     m.registerForm.value(3),
			Phone:       phone,
			PanNo:       m.registerForm.value(5),
			AccountType: m.registerForm.value(6),
			Role:        gateway.RoleCustomer,
		})
	})
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		return m, m.navigate(routes.PathAccount)
	case "p":
		return m, m.navigate(routes.PathCustomer)
	case "c":
		if m.sessions.IsAdmin() {
			return m, m.navigate(routes.PathAdmin)
		}
	case "r":
		return m, tea.Batch(m.ctrl.RefreshBalance(), m.ctrl.RefreshHistory())
	}
	return m, nil
}

func (m *Model) updateAccount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(routes.PathDashboard)
	case key.Matches(msg, m.keys.TabLeft):
		m.cycleTab(-1)
		return m, nil
	case key.Matches(msg, m.keys.TabRight):
		m.cycleTab(1)
		return m, nil
	}

	switch m.tab {
	case tabOverview:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.ctrl.RefreshAccount()
		}
	case tabDeposit:
		return m, m.updateForm(&m.depositForm, msg, func() tea.Cmd {
			return m.ctrl.SubmitDeposit(m.depositForm.value(0))
		})
	case tabWithdraw:
		return m, m.updateForm(&m.withdrawForm, msg, func() tea.Cmd {
			return m.ctrl.SubmitWithdraw(m.withdrawForm.value(0))
		})
	case tabHistory:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.ctrl.RefreshHistory()
		}
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	case tabInterest:
		return m, m.updateForm(&m.interestForm, msg, func() tea.Cmd {
			return m.ctrl.SubmitInterest(m.interestForm.value(0), m.interestForm.value(1))
		})
	case tabNotify:
		return m, m.updateForm(&m.notifyForm, msg, func() tea.Cmd {
			return m.ctrl.SubmitNotify(m.notifyForm.value(0))
		})
	case tabBalance:
		return m, m.updateForm(&m.balanceForm, msg, func() tea.Cmd {
			return m.ctrl.SubmitUpdateBalance(m.balanceForm.value(0))
		})
	}
	return m, nil
}

func (m *Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.editProfile {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, m.navigate(routes.PathDashboard)
		case key.Matches(msg, m.keys.Edit):
			m.startProfileEdit()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Back) {
		m.editProfile = false
		return m, nil
	}
	return m, m.updateForm(&m.profileForm, msg, func() tea.Cmd {
		profile := m.ctrl.Profile()
		phone, _ := util.ParseInt64(m.profileForm.value(3))
		edited := gateway.Customer{
			Name:    m.profileForm.value(0),
			Email:   m.profileForm.value(1),
			Address: m.profileForm.value(2),
			Phone:   phone,
		}
		if profile != nil {
			edited.ID = profile.ID
			edited.CustomerID = profile.CustomerID
			edited.AccountNo = profile.AccountNo
			edited.PanNo = profile.PanNo
			edited.AccountType = profile.AccountType
			edited.Role = profile.Role
		}
		return m.ctrl.SubmitUpdateProfile(edited)
	})
}

func (m *Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(routes.PathDashboard)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.ctrl.RefreshRoster()
	case key.Matches(msg, m.keys.Delete):
		row := m.rosterTable.SelectedRow()
		if len(row) > 0 {
			return m, m.ctrl.SubmitDeleteCustomer(row[0])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.rosterTable, cmd = m.rosterTable.Update(msg)
	return m, cmd
}

// updateForm applies the shared form navigation bindings, invoking submit
// when enter lands on the button.
func (m *Model) updateForm(f *form, msg tea.KeyMsg, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		f.next()
		return nil
	case key.Matches(msg, m.keys.Prev):
		f.prev()
		return nil
	case key.Matches(msg, m.keys.Submit):
		if f.onButton() {
			return submit()
		}
		f.next()
		return nil
	}
	return f.update(msg)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// navigate applies the route guards and moves to the resolved page,
// scheduling the page's data loads.
func (m *Model) navigate(target string) tea.Cmd {
	resolved := routes.Resolve(m.sessions, target)
	m.page = resolved
	m.nav.SetActive(resolved)
	m.syncHeader()

	switch resolved {
	case routes.PathLogin:
		m.loginForm.reset()
	case routes.PathAdminLogin:
		m.adminForm.reset()
	case routes.PathRegister:
		m.registerForm.reset()
	case routes.PathDashboard, routes.PathAccount:
		return tea.Batch(m.ctrl.RefreshAccount(), m.ctrl.RefreshHistory())
	case routes.PathAdmin:
		return m.ctrl.RefreshRoster()
	}
	return nil
}

// logout tears down the session, clears all controller state, and returns to
// the public home page.
func (m *Model) logout() tea.Cmd {
	if err := m.sessions.Logout(); err != nil {
		m.notice = "Could not clear the saved session: " + err.Error()
	}
	m.ctrl.Reset()
	m.editProfile = false
	m.tab = tabOverview
	m.historyTable.SetRows(nil)
	m.rosterTable.SetRows(nil)
	return m.navigate(routes.PathHome)
}

func (m *Model) syncHeader() {
	if cur := m.sessions.Current(); cur != nil {
		m.header.SetIdentity(cur.Name, string(cur.Role))
	} else {
		m.header.SetIdentity("", "")
	}
}

func (m *Model) cycleTab(dir int) {
	tabs := m.visibleTabs()
	idx := 0
	for i, t := range tabs {
		if t == m.tab {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(tabs)) % len(tabs)
	m.tab = tabs[idx]
}

// =============================================================================
// LOGIN COMPLETION
// =============================================================================

func (m *Model) handleLoginResult(msg txn.LoginResultMsg) (tea.Model, tea.Cmd) {
	cmd := m.ctrl.HandleLogin(msg)
	if !m.sessions.IsAuthenticated() {
		return m, cmd
	}

	// The admin page only accepts identities the server marked as admin.
	// Anything else is torn down on the spot.
	if m.page == routes.PathAdminLogin && !m.sessions.IsAdmin() {
		m.notice = "This account does not have administrator access"
		return m, tea.Batch(cmd, m.logout())
	}

	m.notice = ""
	target := routes.PathDashboard
	if m.page == routes.PathAdminLogin {
		target = routes.PathAdmin
	}
	return m, tea.Batch(cmd, m.navigate(target))
}

// =============================================================================
// TABLE ROWS
// =============================================================================

func (m *Model) historyRows() []table.Row {
	history := m.ctrl.History()
	rows := make([]table.Row, 0, len(history))
	for _, t := range history {
		credit := t.Type == "deposit"
		rows = append(rows, table.Row{
			t.Timestamp.Format("2006-01-02 15:04"),
			t.Type,
			components.FormatSignedINR(t.Amount, credit),
		})
	}
	return rows
}

func (m *Model) rosterRows() []table.Row {
	customers := m.ctrl.Customers()
	rows := make([]table.Row, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, table.Row{c.CustomerID, c.Name, c.Email, c.AccountNo})
	}
	return rows
}

func (m *Model) startProfileEdit() {
	profile := m.ctrl.Profile()
	if profile == nil {
		m.notice = "Profile has not loaded yet"
		return
	}
	m.profileForm.reset()
	m.profileForm.setValue(0, profile.Name)
	m.profileForm.setValue(1, profile.Email)
	m.profileForm.setValue(2, profile.Address)
	m.profileForm.setValue(3, util.Int64ToString(profile.Phone))
	m.editProfile = true
}
