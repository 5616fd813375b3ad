// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"kavio/cli/internal/model"
	"kavio/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	loginUser     string
	loginPassword string
)

// errLoginFailed is returned for the exit status; the failure itself has
// already been reported through the notification channel.
var errLoginFailed = errors.New("login failed")

// loginCmd authenticates against the Kavio backend and stores the resulting
// session in the OS keychain so subsequent commands pick it up.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Authenticate against the Kavio backend",
	Long: `The login command authenticates with your Kavio account and keeps the
resulting session token in the OS keychain. Credentials can be passed with
flags, but the interactive prompt is preferred: the password is read with
echo disabled and scrubbed from the screen afterwards.

If already logged in with a valid session, the flow is skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if cur := a.store.Current(); !cur.Anonymous() {
			fmt.Printf("Already logged in as %s\n", cur.LoginHandle)
			return nil
		}

		creds, err := readCredentials()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		stop := startInlineSpinner(os.Stdout, "Authenticating", []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		ok := a.svc.Login(ctx, creds)
		stop()

		if !ok {
			return errLoginFailed
		}

		cur := a.store.Current()
		fmt.Printf("👋 Welcome back, %s!\n", cur.DisplayName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "Account e-mail")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prefer the interactive prompt)")
}

// readCredentials collects the login handle and password, prompting for
// whatever the flags did not provide. The password prompt is cleared from
// the terminal once the secret has been read.
func readCredentials() (model.Credentials, error) {
	handle := strings.TrimSpace(loginUser)
	if handle == "" {
		fmt.Print("E-mail: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return model.Credentials{}, err
		}
		handle = strings.TrimSpace(line)
	}
	if handle == "" {
		return model.Credentials{}, errors.New("no e-mail provided")
	}

	password := loginPassword
	if password == "" {
		prompt := "Password: "
		fmt.Print(prompt)
		secret, err := terminal.ReadPassword()
		if err != nil {
			return model.Credentials{}, err
		}
		terminal.ClearPreviousLines(len(prompt))
		password = secret
	}
	if password == "" {
		return model.Credentials{}, errors.New("no password provided")
	}

	return model.Credentials{Handle: handle, Password: password}, nil
}
