// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal is the Bubble Tea application for the banking client. It
// owns page navigation, delegates every banking operation to the transaction
// controller, and consults the route table before each page change so guarded
// pages are unreachable without the right session state.
package portal

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/routes"
	"github.com/jeranaias/securebank-tui/internal/session"
	"github.com/jeranaias/securebank-tui/internal/txn"
	"github.com/jeranaias/securebank-tui/internal/ui/components"
	"github.com/jeranaias/securebank-tui/internal/ui/styles"
)

// =============================================================================
// ACCOUNT TABS
// =============================================================================

type accountTab int

const (
	tabOverview accountTab = iota
	tabDeposit
	tabWithdraw
	tabHistory
	tabInterest
	tabNotify
	tabBalance // admin only
)

func (t accountTab) String() string {
	switch t {
	case tabOverview:
		return "Overview"
	case tabDeposit:
		return "Deposit"
	case tabWithdraw:
		return "Withdraw"
	case tabHistory:
		return "History"
	case tabInterest:
		return "Interest"
	case tabNotify:
		return "Notify"
	case tabBalance:
		return "Set Balance"
	default:
		return "?"
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	theme     *styles.Theme
	header    *components.Header
	nav       *components.NavBar
	statusMsg *components.StatusMessage
	footer    *components.ShortcutBar
	keys      keyMap

	sessions *session.Store
	ctrl     *txn.Controller

	page   string // current route path
	notice string // app-level message outside the controller's status window

	// Forms
	loginForm    form
	adminForm    form
	registerForm form
	profileForm  form
	editProfile  bool

	// Account page
	tab          accountTab
	depositForm  form
	withdrawForm form
	interestForm form
	notifyForm   form
	balanceForm  form
	historyTable table.Model

	// Admin page
	rosterTable table.Model

	spin    spinner.Model
	version string
	width   int
	height  int
}

// New creates the root model. The initial page is the public home screen.
func New(sessions *session.Store, ctrl *txn.Controller, version string) *Model {
	theme := styles.NewTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		theme:     theme,
		header:    components.NewHeader(theme),
		statusMsg: components.NewStatusMessage(theme),
		footer:    components.NewShortcutBar(theme),
		keys:      defaultKeyMap(),
		sessions:  sessions,
		ctrl:      ctrl,
		page:      routes.PathHome,
		spin:      sp,
		version:   version,
		width:     80,
		height:    24,
	}

	m.nav = components.NewNavBar(theme, []components.NavItem{
		{Label: "Dashboard", Path: routes.PathDashboard},
		{Label: "Account", Path: routes.PathAccount},
		{Label: "Profile", Path: routes.PathCustomer},
	})

	m.loginForm = newForm(
		fieldSpec{label: "Email", placeholder: "you@example.com"},
		fieldSpec{label: "Password", placeholder: "password", secret: true},
	)
	m.adminForm = newForm(
		fieldSpec{label: "Admin Email", placeholder: "admin@securebank.in"},
		fieldSpec{label: "Password", placeholder: "password", secret: true},
	)
	m.registerForm = newForm(
		fieldSpec{label: "Full Name", placeholder: "Full name"},
		fieldSpec{label: "Email", placeholder: "you@example.com"},
		fieldSpec{label: "Password", placeholder: "min 6 characters", secret: true},
		fieldSpec{label: "Address", placeholder: "Street, city"},
		fieldSpec{label: "Phone", placeholder: "10-digit mobile", limit: 15},
		fieldSpec{label: "PAN", placeholder: "ABCDE1234F", limit: 10},
		fieldSpec{label: "Account Type", placeholder: "savings or current", limit: 16},
	)
	m.profileForm = newForm(
		fieldSpec{label: "Full Name"},
		fieldSpec{label: "Email"},
		fieldSpec{label: "Address"},
		fieldSpec{label: "Phone", limit: 15},
	)

	m.depositForm = newForm(fieldSpec{label: "Amount", placeholder: "0.00", limit: 16})
	m.withdrawForm = newForm(fieldSpec{label: "Amount", placeholder: "0.00", limit: 16})
	m.interestForm = newForm(
		fieldSpec{label: "Rate (%)", placeholder: "7.5", limit: 8},
		fieldSpec{label: "Years", placeholder: "1", limit: 4},
	)
	m.notifyForm = newForm(fieldSpec{label: "Message", placeholder: "at least 5 characters", limit: 120})
	m.balanceForm = newForm(fieldSpec{label: "New Balance", placeholder: "0.00", limit: 16})

	m.historyTable = newHistoryTable()
	m.rosterTable = newRosterTable()

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	// A persisted session skips straight past the guest pages.
	if m.sessions.IsAuthenticated() {
		return m.navigate(routes.PathDashboard)
	}
	return m.spin.Tick
}

// =============================================================================
// TABLES
// =============================================================================

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 17},
			{Title: "Type", Width: 10},
			{Title: "Amount", Width: 16},
		}),
		table.WithHeight(8),
	)
	applyTableStyles(&t)
	return t
}

func newRosterTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Customer ID", Width: 14},
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 26},
			{Title: "Account", Width: 12},
		}),
		table.WithHeight(10),
	)
	applyTableStyles(&t)
	return t
}

func applyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(styles.Indigo)
	s.Selected = s.Selected.Background(styles.SelectionBg).Bold(true)
	t.SetStyles(s)
}

// visibleTabs returns the account tabs for the current role. The balance
// override tab only exists for administrators.
func (m *Model) visibleTabs() []accountTab {
	tabs := []accountTab{tabOverview, tabDeposit, tabWithdraw, tabHistory, tabInterest, tabNotify}
	if m.sessions.IsAdmin() {
		tabs = append(tabs, tabBalance)
	}
	return tabs
}
