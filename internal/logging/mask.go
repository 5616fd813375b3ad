// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in messages shown to
// users so that passwords and session tokens are never echoed to the terminal.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)("senha"\s*:\s*")([^"]+)(")`)
	rePassKV   = regexp.MustCompile(`(?i)(password=|senha=)([^\s;]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|"token"\s*:\s*"|authorization:\s*)([A-Za-z0-9._-]+)`)
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// JSON bodies and header-style strings are both covered.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***$3")
	out = rePassKV.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	return out
}
