// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Kavio CRM client.
// It implements subcommands for authentication, client and opportunity
// management, statistics and the support chatbot using the Cobra framework.
package cmd

import (
	"fmt"
	"os"

	"kavio/cli/internal/backend"
	"kavio/cli/internal/config"
	"kavio/cli/internal/notify"
	"kavio/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "kavio",
	Short:         "Kavio CRM from your terminal",
	Long:          `Kavio is a command-line client for the Kavio CRM backend: manage clients and sales opportunities, check pipeline statistics and talk to the support chatbot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("kavio %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
}

// app bundles the wiring every command needs: configuration, the session
// store and service, the backend API and the notification surface.
type app struct {
	cfg      config.Config
	store    *session.Store
	svc      *session.Service
	api      backend.API
	notifier notify.Notifier
}

// newApp loads configuration, restores any persisted session and wires the
// backend to the session store. The session service registers itself as the
// backend's unauthorized handler, so forced logout is in place before the
// first request goes out.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.NoColor {
		pterm.DisableColor()
	}

	store := session.NewStore()
	notifier := notify.NewConsole()
	api := backend.New(cfg.APIBaseURL, store)
	svc := session.NewService(api, store, notifier)
	svc.Restore()

	return &app{
		cfg:      cfg,
		store:    store,
		svc:      svc,
		api:      api,
		notifier: notifier,
	}, nil
}
