// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package txn

import "github.com/jeranaias/securebank-tui/internal/gateway"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// Completion messages delivered when a gateway call resolves. Each carries
// the zero value of its payload alongside a non-nil Err on failure.

// LoginResultMsg is delivered when a login attempt completes.
type LoginResultMsg struct {
	Customer gateway.Customer
	Err      error
}

// RegisterResultMsg is delivered when a registration attempt completes.
type RegisterResultMsg struct {
	Customer gateway.Customer
	Err      error
}

// ProfileUpdatedMsg is delivered when a profile update completes.
type ProfileUpdatedMsg struct {
	Customer gateway.Customer
	Err      error
}

// DepositResultMsg is delivered when a deposit completes.
type DepositResultMsg struct {
	Amount  float64
	Balance float64 // new balance reported by the server
	Err     error
}

// WithdrawResultMsg is delivered when a withdrawal completes.
type WithdrawResultMsg struct {
	Amount  float64
	Balance float64
	Err     error
}

// UpdateBalanceResultMsg is delivered when an admin balance update completes.
type UpdateBalanceResultMsg struct {
	NewBalance float64
	Account    gateway.Account
	Err        error
}

// InterestResultMsg is delivered when an interest calculation completes.
type InterestResultMsg struct {
	Interest float64
	Rate     float64
	Years    int
	Err      error
}

// NotifyResultMsg is delivered when a notification send completes.
type NotifyResultMsg struct {
	Ack string
	Err error
}

// AccountRefreshedMsg is delivered by the resynchronizing account read.
type AccountRefreshedMsg struct {
	Account gateway.Account
	Err     error
}

// BalanceRefreshedMsg is delivered by the balance-only poll.
type BalanceRefreshedMsg struct {
	Balance float64
	Err     error
}

// HistoryRefreshedMsg is delivered by the resynchronizing history read.
type HistoryRefreshedMsg struct {
	Transactions []gateway.Transaction
	Err          error
}

// RosterMsg is delivered when the admin customer roster loads.
type RosterMsg struct {
	Customers []gateway.Customer
	Err       error
}

// CustomerDeletedMsg is delivered when an admin delete completes.
type CustomerDeletedMsg struct {
	CustomerID string
	Err        error
}

// StatusExpiredMsg clears the status message after its visibility window.
// Gen guards against a stale expiry clearing a newer message.
type StatusExpiredMsg struct {
	Gen int
}
