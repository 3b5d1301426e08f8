// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"errors"
	"strconv"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes gateway errors for handling.
type Kind int

const (
	// KindTransport means no response was received at all.
	KindTransport Kind = iota
	// KindServer means the server responded with a non-2xx status.
	KindServer
	// KindDecode means a 2xx response carried an unreadable body.
	KindDecode
)

// Error represents a failed gateway operation.
//
// For KindServer, Status holds the HTTP status code and Message holds the
// server-supplied message when the body carried one (empty otherwise).
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind == KindServer {
		msg = "server returned status " + strconv.Itoa(e.Status)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsTransport reports whether err is a transport-level failure (the request
// never produced a response).
func IsTransport(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindTransport
}

// StatusOf returns the HTTP status of a server error, or 0 when err is not
// a server error.
func StatusOf(err error) int {
	var ge *Error
	if errors.As(err, &ge) && ge.Kind == KindServer {
		return ge.Status
	}
	return 0
}

// ServerMessage returns the server-supplied message of a server error, or
// "" when there is none.
func ServerMessage(err error) string {
	var ge *Error
	if errors.As(err, &ge) && ge.Kind == KindServer {
		return ge.Message
	}
	return ""
}
