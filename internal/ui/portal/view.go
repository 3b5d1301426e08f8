// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/securebank-tui/internal/routes"
	"github.com/jeranaias/securebank-tui/internal/txn"
	"github.com/jeranaias/securebank-tui/internal/ui/components"
	"github.com/jeranaias/securebank-tui/internal/ui/styles"
	"github.com/jeranaias/securebank-tui/internal/util"
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.page {
	case routes.PathHome:
		body = m.viewHome()
	case routes.PathLogin:
		body = m.viewLogin()
	case routes.PathAdminLogin:
		body = m.viewAdminLogin()
	case routes.PathRegister:
		body = m.viewRegister()
	case routes.PathDashboard:
		body = m.viewDashboard()
	case routes.PathAccount:
		body = m.viewAccount()
	case routes.PathCustomer:
		body = m.viewProfile()
	case routes.PathAdmin:
		body = m.viewAdmin()
	}

	sections := []string{m.header.View()}
	if m.sessions.IsAuthenticated() {
		sections = append(sections, m.nav.View())
	}
	sections = append(sections, body)

	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.footer.View(m.shortcutsFor(m.page)))

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// statusLine renders the controller's transient message, the app-level
// notice, or the busy spinner, in that order of priority.
func (m *Model) statusLine() string {
	if text, kind, ok := m.ctrl.Status(); ok {
		return m.statusMsg.View(text, kind == txn.MessageSuccess)
	}
	if m.notice != "" {
		return styles.RenderWarning(m.notice)
	}
	if m.anyInFlight() {
		return m.spin.View() + m.theme.Hint.Render(" working…")
	}
	return ""
}

func (m *Model) anyInFlight() bool {
	for _, f := range []txn.FormID{
		txn.FormLogin, txn.FormRegister, txn.FormProfile, txn.FormDeposit,
		txn.FormWithdraw, txn.FormUpdateBalance, txn.FormInterest,
		txn.FormNotify, txn.FormRoster,
	} {
		if m.ctrl.InFlight(f) {
			return true
		}
	}
	return false
}

// =============================================================================
// PAGE VIEWS
// =============================================================================

func (m *Model) viewHome() string {
	logo := m.theme.WelcomeLogo.Render("SecureBank")
	version := m.theme.WelcomeVersion.Render("terminal banking · " + m.version)

	menu := strings.Join([]string{
		m.theme.ShortcutKey.Render("l") + "  Login",
		m.theme.ShortcutKey.Render("r") + "  Open an account",
		m.theme.ShortcutKey.Render("a") + "  Administrator login",
		m.theme.ShortcutKey.Render("q") + "  Quit",
	}, "\n")

	box := m.theme.WelcomeBox.Render(lipgloss.JoinVertical(lipgloss.Center, logo, version, "", menu))
	return m.theme.Container.Render(box)
}

func (m *Model) viewLogin() string {
	title := m.theme.FormTitle.Render("Login")
	return m.theme.Container.Render(
		m.theme.FormBox.Render(title + "\n" + m.loginForm.view(m.theme, "Sign In")))
}

func (m *Model) viewAdminLogin() string {
	title := m.theme.FormTitle.Render("Administrator Login")
	hint := m.theme.Hint.Render("Admin access is verified by the bank, not this client.")
	return m.theme.Container.Render(
		m.theme.FormBox.Render(title + "\n" + m.adminForm.view(m.theme, "Sign In") + "\n\n" + hint))
}

func (m *Model) viewRegister() string {
	title := m.theme.FormTitle.Render("Open an Account")
	return m.theme.Container.Render(
		m.theme.FormBox.Render(title + "\n" + m.registerForm.view(m.theme, "Register")))
}

func (m *Model) viewDashboard() string {
	cur := m.sessions.Current()
	if cur == nil {
		return ""
	}

	greeting := m.theme.FormTitle.Render("Welcome back, " + cur.Name)

	balance := "loading…"
	if account := m.ctrl.Account(); account != nil {
		balance = components.FormatINR(account.Balance)
	}
	card := m.theme.BalanceCard.Render(
		m.theme.BalanceLabel.Render("Available balance") + "\n" +
			m.theme.BalanceAmount.Render(balance))

	items := []string{
		m.theme.ShortcutKey.Render("a") + "  Account operations",
		m.theme.ShortcutKey.Render("p") + "  Profile",
	}
	if m.sessions.IsAdmin() {
		items = append(items, m.theme.ShortcutKey.Render("c")+"  Customer roster")
	}
	items = append(items, m.theme.ShortcutKey.Render("r")+"  Refresh")

	return m.theme.Container.Render(
		lipgloss.JoinVertical(lipgloss.Left, greeting, "", card, "", strings.Join(items, "\n")))
}

func (m *Model) viewAccount() string {
	tabs := m.visibleTabs()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.tab {
			parts = append(parts, m.theme.NavItemActive.Render(t.String()))
		} else {
			parts = append(parts, m.theme.NavItem.Render(t.String()))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	var content string
	switch m.tab {
	case tabOverview:
		content = m.viewOverview()
	case tabDeposit:
		content = m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Deposit") + "\n" + m.depositForm.view(m.theme, "Deposit"))
	case tabWithdraw:
		content = m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Withdraw") + "\n" + m.withdrawForm.view(m.theme, "Withdraw"))
	case tabHistory:
		content = m.historyTable.View()
	case tabInterest:
		content = m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Interest Calculator") + "\n" + m.interestForm.view(m.theme, "Calculate"))
	case tabNotify:
		content = m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Send Notification") + "\n" + m.notifyForm.view(m.theme, "Send"))
	case tabBalance:
		content = m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Set Balance (admin)") + "\n" + m.balanceForm.view(m.theme, "Update"))
	}

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, tabBar, "", content))
}

func (m *Model) viewOverview() string {
	account := m.ctrl.Account()
	if account == nil {
		return m.theme.Hint.Render("Loading account…")
	}

	rows := [][2]string{
		{"Account No", account.AccountNo},
		{"Type", account.AccountType},
		{"Balance", components.FormatINR(account.Balance)},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(m.theme.FieldLabel.Render(r[0]))
		sb.WriteString("  ")
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
	return m.theme.FormBox.Render(sb.String())
}

func (m *Model) viewProfile() string {
	if m.editProfile {
		return m.theme.Container.Render(
			m.theme.FormBox.Render(
				m.theme.FormTitle.Render("Edit Profile") + "\n" + m.profileForm.view(m.theme, "Save")))
	}

	profile := m.ctrl.Profile()
	if profile == nil {
		return m.theme.Container.Render(m.theme.Hint.Render("Profile has not loaded yet."))
	}

	rows := [][2]string{
		{"Customer ID", profile.CustomerID},
		{"Name", profile.Name},
		{"Email", profile.Email},
		{"Address", profile.Address},
		{"Phone", util.Int64ToString(profile.Phone)},
		{"PAN", profile.PanNo},
		{"Account No", profile.AccountNo},
		{"Account Type", profile.AccountType},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Profile"))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(m.theme.FieldLabel.Render(r[0]))
		sb.WriteString("  ")
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
	return m.theme.Container.Render(m.theme.FormBox.Render(sb.String()))
}

func (m *Model) viewAdmin() string {
	title := m.theme.FormTitle.Render("Customer Roster")
	return m.theme.Container.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.rosterTable.View()))
}

// =============================================================================
// FOOTER SHORTCUTS
// =============================================================================

func (m *Model) shortcutsFor(page string) []components.Shortcut {
	switch page {
	case routes.PathHome:
		return []components.Shortcut{
			{Key: "l/r/a", Desc: "menu"},
			{Key: "q", Desc: "quit"},
		}
	case routes.PathLogin, routes.PathAdminLogin, routes.PathRegister:
		return []components.Shortcut{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "back"},
		}
	case routes.PathAccount:
		return []components.Shortcut{
			{Key: "[ ]", Desc: "switch tab"},
			{Key: "esc", Desc: "dashboard"},
			{Key: "ctrl+l", Desc: "sign out"},
		}
	case routes.PathAdmin:
		return []components.Shortcut{
			{Key: "↑/↓", Desc: "select"},
			{Key: "d", Desc: "delete"},
			{Key: "r", Desc: "refresh"},
			{Key: "esc", Desc: "dashboard"},
		}
	case routes.PathCustomer:
		if m.editProfile {
			return []components.Shortcut{
				{Key: "enter", Desc: "save"},
				{Key: "esc", Desc: "cancel"},
			}
		}
		return []components.Shortcut{
			{Key: "e", Desc: "edit"},
			{Key: "esc", Desc: "dashboard"},
		}
	default:
		return []components.Shortcut{
			{Key: "a/p", Desc: "navigate"},
			{Key: "ctrl+l", Desc: "sign out"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}
