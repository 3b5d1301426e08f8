// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "time"

// =============================================================================
// WIRE TYPES
// =============================================================================

// Role values carried in the Customer payload.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is the customer record as served by the customer service.
type Customer struct {
	ID          int64  `json:"id,omitempty"`
	CustomerID  string `json:"customerId"`
	AccountNo   string `json:"accountNo"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       int64  `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	PanNo       string `json:"panNo"`
	AccountType string `json:"accountType,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Account is a cached mirror of server-side account state. It is refreshed
// after every mutating operation and never used as the precondition for a
// subsequent mutation.
type Account struct {
	ID          int64   `json:"id,omitempty"`
	AccountNo   string  `json:"accountNo"`
	Balance     float64 `json:"balance"`
	AccountType string  `json:"account_type"`
}

// Transaction is a read-only projection from the server. The client never
// constructs or mutates these.
type Transaction struct {
	ID        int64     `json:"id"`
	AccountNo string    `json:"accountNo"`
	Type      string    `json:"type"` // "deposit" or "withdraw"
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// serverMessage is the error body shape the banking service returns on
// non-2xx responses.
type serverMessage struct {
	Message string `json:"message"`
}
