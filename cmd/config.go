// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"

	"kavio/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		rows := pterm.TableData{
			{"api-url", cfg.APIBaseURL},
			{"chatbot-url", cfg.ChatbotBaseURL},
			{"no-color", strconv.FormatBool(cfg.NoColor)},
		}
		return pterm.DefaultTable.WithData(rows).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist one setting",
	Long: `Persist one setting in the config file. Keys: api-url, chatbot-url,
no-color. Environment variables still override the file at runtime.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		switch key {
		case "api-url":
			cfg.APIBaseURL = value
		case "chatbot-url":
			cfg.ChatbotBaseURL = value
		case "no-color":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("no-color expects true or false, got %q", value)
			}
			cfg.NoColor = b
		default:
			return fmt.Errorf("unknown key %q, expected api-url, chatbot-url or no-color", key)
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
