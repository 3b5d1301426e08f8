// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package txn

import (
	"net/http"

	"github.com/jeranaias/securebank-tui/internal/gateway"
)

// =============================================================================
// ERROR -> MESSAGE MAPPING
// =============================================================================

// LoginErrorMessage maps a login failure to its user-facing text.
//
// A server-supplied message takes precedence over the status-code table.
// Transport failures and unlisted statuses fall through to the generic
// retry message; nothing here is ever fatal.
func LoginErrorMessage(err error) string {
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}

	switch gateway.StatusOf(err) {
	case http.StatusBadRequest:
		return "User does not exist or email/password mismatch"
	case http.StatusUnauthorized:
		return "Invalid email or password"
	case http.StatusNotFound:
		return "User not found"
	case http.StatusInternalServerError:
		return "Server error. Please try again later"
	default:
		return "Login failed. Please check your credentials and try again"
	}
}

// OperationErrorMessage maps a failed mutating operation to its user-facing
// text. The server's message is shown verbatim when present.
func OperationErrorMessage(operation string, err error) string {
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return operation + " failed. Please try again."
}
