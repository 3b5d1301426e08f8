// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the client's record of who is logged in.
//
// Exactly one Session may be current per running client, or none. The
// Store owns it exclusively; every other component only reads.
package session

import "github.com/jeranaias/securebank-tui/internal/gateway"

// =============================================================================
// SESSION
// =============================================================================

// Role identifies the authenticated identity's role.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Session is the authenticated identity. It is created from a successful
// login response and destroyed by logout (or by an unparseable persisted
// record at startup).
type Session struct {
	CustomerID string `json:"customerId"`
	AccountNo  string `json:"accountNo"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`

	// Raw profile fields mirrored from the server's customer record.
	Address     string `json:"address,omitempty"`
	Phone       int64  `json:"phone,omitempty"`
	PanNo       string `json:"panNo,omitempty"`
	AccountType string `json:"accountType,omitempty"`
}

// FromCustomer builds a Session from a server login response. A missing
// role defaults to customer; the server, not the client, grants admin.
func FromCustomer(c gateway.Customer) Session {
	role := Role(c.Role)
	if role != RoleAdmin {
		role = RoleCustomer
	}
	return Session{
		CustomerID:  c.CustomerID,
		AccountNo:   c.AccountNo,
		Name:        c.Name,
		Email:       c.Email,
		Role:        role,
		Address:     c.Address,
		Phone:       c.Phone,
		PanNo:       c.PanNo,
		AccountType: c.AccountType,
	}
}
