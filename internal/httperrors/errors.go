// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into actionable guidance.
// The data-access layer reports a typed network error; this package decides
// whether it looks like a timeout, DNS problem, refused connection, TLS
// issue or server fault, and prints troubleshooting hints for that class.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"kavio/cli/internal/logging"

	"github.com/pterm/pterm"
)

// failureClass is one recognizable flavor of network failure.
type failureClass struct {
	headline string
	hints    []string
	matches  func(err error, lower string) bool
}

var classes = []failureClass{
	{
		headline: "⏱️  Connection timeout while %s",
		hints: []string{
			"The server took too long to respond. This could mean:",
			"  • Slow internet connection",
			"  • Server is under heavy load",
			"  • Network firewall is blocking the connection",
			"",
			"Please try again in a few moments.",
		},
		matches: func(err error, lower string) bool {
			if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") {
				return true
			}
			var netErr net.Error
			return errors.As(err, &netErr) && netErr.Timeout()
		},
	},
	{
		headline: "🌐 Cannot resolve server address while %s",
		hints: []string{
			"Unable to look up the Kavio service host. Please check:",
			"  • Your internet connection is working",
			"  • DNS settings are correct",
			"  • No DNS-level blocking (corporate firewall, parental controls)",
		},
		matches: func(err error, lower string) bool {
			var dnsErr *net.DNSError
			return errors.As(err, &dnsErr)
		},
	},
	{
		headline: "🚫 Connection refused while %s",
		hints: []string{
			"The server is not accepting connections. This could mean:",
			"  • The service is temporarily down",
			"  • Firewall is blocking the connection",
			"  • Wrong server address or port in your config",
			"",
			"Please try again later or check `kavio config`.",
		},
		matches: func(err error, lower string) bool {
			var opErr *net.OpError
			if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				return true
			}
			return strings.Contains(lower, "connection refused")
		},
	},
	{
		headline: "🔒 Secure connection failed while %s",
		hints: []string{
			"Cannot establish a secure HTTPS connection. This could mean:",
			"  • SSL/TLS certificate issue",
			"  • Network proxy interfering with HTTPS",
			"  • System clock is incorrect",
		},
		matches: func(err error, lower string) bool {
			for _, kw := range []string{"tls", "ssl", "certificate", "handshake"} {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			return false
		},
	},
	{
		headline: "⚠️  Server error while %s",
		hints: []string{
			"The Kavio backend encountered an internal error.",
			"This is not a problem with your setup; please try again in a few minutes.",
		},
		matches: func(err error, lower string) bool {
			for _, kw := range []string{"500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable", "gateway timeout"} {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			return false
		},
	},
}

// FormatNetworkError classifies err, prints guidance for that failure class
// and returns a wrapped error for the caller's exit status. Anything shown
// to the user goes through the masking layer first.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}

	masked := logging.Mask(err.Error())
	lower := strings.ToLower(masked)

	for _, c := range classes {
		if c.matches(err, lower) {
			show(c, context)
			return fmt.Errorf("network error: %w", err)
		}
	}

	showGeneric(context, masked)
	return fmt.Errorf("network error: %w", err)
}

func show(c failureClass, context string) {
	pterm.Printf(c.headline+"\n", context)
	pterm.Println()
	for _, h := range c.hints {
		pterm.Println(h)
	}
	pterm.Println()
}

func showGeneric(context, details string) {
	pterm.Printf("❌ Cannot reach the Kavio service while %s\n", context)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • Your internet connection")
	pterm.Println("  • Whether the configured backend URL is accessible from your network")
	pterm.Println("  • Firewall settings that might block HTTPS requests")
	pterm.Println()

	if details != "" {
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", details)
		pterm.Println()
	}
}

// ExtractHostFromURL pulls the hostname out of a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
