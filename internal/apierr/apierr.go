// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package apierr defines typed errors raised by the data-access layer.
// Callers branch on the error kind instead of string-matching status codes;
// the single place that inspects HTTP responses lives in internal/backend.
package apierr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Unauthorized indicates the backend rejected the session token
	// (missing, invalid or expired).
	Unauthorized Kind = "unauthorized"
	// RequestFailed indicates any other non-success HTTP response.
	RequestFailed Kind = "request_failed"
	// Network indicates the request never produced an HTTP response.
	Network Kind = "network"
	// ValidationFailed indicates client-side validation stopped the
	// request before it reached the network.
	ValidationFailed Kind = "validation_failed"
)

// E wraps an error with kind and human-friendly message. For RequestFailed
// errors, Status and Body carry the HTTP response details.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Body    string
	Err     error
}

func (e *E) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s (status %d): %v", e.Kind, e.Message, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *E) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *E { return &E{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }

// Status builds a RequestFailed error carrying the response status and body.
func StatusError(status int, body string) *E {
	return &E{Kind: RequestFailed, Message: "request failed", Status: status, Body: body}
}

// KindOf returns the kind of err, or "" when err is not an *E.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUnauthorized reports whether err (or anything it wraps) is an
// Unauthorized error.
func IsUnauthorized(err error) bool { return KindOf(err) == Unauthorized }

// IsNetwork reports whether err is a Network error.
func IsNetwork(err error) bool { return KindOf(err) == Network }
