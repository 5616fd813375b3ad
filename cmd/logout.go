// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
)

// logoutCmd clears the session from memory and from the OS keychain.
// No revocation call is made to the backend; the token simply stops being
// used and eventually expires server-side.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session",
	Long: `The logout command resets the session to anonymous and removes the
stored token and session state from the OS keychain. Running it while
already logged out is harmless.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.svc.Logout()
		a.notifier.Info("Session cleared, see you soon")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
