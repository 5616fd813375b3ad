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
	registerName  string
	registerEmail string
	registerPhoto string
)

// registerCmd creates a new Kavio account. The password is always prompted
// interactively, with a confirmation, and never accepted as a flag.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create a new Kavio account",
	Long: `The register command creates a new account on the Kavio backend.
Passwords must be at least 8 characters and are confirmed before anything is
sent. After registering, run 'kavio login' to start a session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		name, err := promptIfEmpty(reader, registerName, "Name: ")
		if err != nil {
			return err
		}
		email, err := promptIfEmpty(reader, registerEmail, "E-mail: ")
		if err != nil {
			return err
		}

		password, err := promptSecret("Password (min 8 chars): ")
		if err != nil {
			return err
		}
		confirm, err := promptSecret("Confirm password: ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user := model.User{Name: name, Handle: email, Password: password, Photo: registerPhoto}
		if err := a.svc.Register(ctx, user, confirm); err != nil {
			// The notification channel already carries the details.
			return errors.New("registration failed")
		}

		fmt.Println("Run 'kavio login' to start a session.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account e-mail")
	registerCmd.Flags().StringVar(&registerPhoto, "photo", "", "Avatar URL (optional)")
}

// promptIfEmpty returns value when set, otherwise prompts for it.
func promptIfEmpty(reader *bufio.Reader, value, prompt string) (string, error) {
	v := strings.TrimSpace(value)
	if v != "" {
		return v, nil
	}
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(line)
	if v == "" {
		return "", fmt.Errorf("empty input for %q", strings.TrimSuffix(prompt, ": "))
	}
	return v, nil
}

// promptSecret reads a password without echo and scrubs the prompt line.
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := terminal.ReadPassword()
	if err != nil {
		return "", err
	}
	terminal.ClearPreviousLines(len(prompt))
	return secret, nil
}
