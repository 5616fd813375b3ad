// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"time"

	"kavio/cli/internal/apierr"
	"kavio/cli/internal/httperrors"
	"kavio/cli/internal/logging"
	"kavio/cli/internal/notify"

	"github.com/spf13/cobra"
)

// errLoginRequired aborts a guarded command; the notification has already
// been shown by the time it propagates.
var errLoginRequired = errors.New("login required")

// guarded wraps a command body so it only runs with an authenticated session.
// This is the single place that gates protected commands: the session is
// checked once before the body, and an anonymous session emits exactly one
// "login required" notification and aborts without running anything.
func guarded(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := ensureAuthenticated(a); err != nil {
			return err
		}
		return run(cmd, a, args)
	}
}

// ensureAuthenticated rejects anonymous sessions with a single notification.
func ensureAuthenticated(a *app) error {
	if a.store.Current().Anonymous() {
		a.notifier.Error("You need to be logged in, run 'kavio login'")
		return errLoginRequired
	}
	return nil
}

// reportFailure turns a data-access error into its single user-visible
// report. Unauthorized errors are skipped here because the centralized
// expiry handler already reported them; network errors get the
// troubleshooting treatment instead of a bare line.
func reportFailure(n notify.Notifier, op string, err error) {
	if err == nil || apierr.IsUnauthorized(err) {
		return
	}
	if apierr.IsNetwork(err) {
		_ = httperrors.FormatNetworkError(err, op)
		return
	}
	n.Error(logging.PresentError("Error "+op, err))
}

// opCtx bounds one backend operation. Cancelling the returned context
// aborts the in-flight request.
func opCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}
