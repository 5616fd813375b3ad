// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"kavio/cli/internal/model"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	clientName  string
	clientEmail string
	clientPhone string
)

// clientCmd groups the client-record operations.
var clientCmd = &cobra.Command{
	Use:     "client",
	Aliases: []string{"clients"},
	Short:   "Manage CRM client records",
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		ctx, cancel := opCtx(cmd)
		defer cancel()

		clients, err := a.api.ListClients(ctx)
		if err != nil {
			reportFailure(a.notifier, "fetching clients", err)
			return errors.New("could not fetch clients")
		}
		if len(clients) == 0 {
			pterm.Println("No clients registered yet.")
			return nil
		}
		renderClients(clients)
		return nil
	}),
}

var clientGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		c, err := a.api.GetClient(ctx, id)
		if err != nil {
			reportFailure(a.notifier, "fetching the client", err)
			return errors.New("could not fetch the client")
		}

		pterm.Printf("Name:  %s\n", c.Name)
		pterm.Printf("Email: %s\n", c.Email)
		if c.Phone != "" {
			pterm.Printf("Phone: %s\n", c.Phone)
		}
		if len(c.Opportunities) > 0 {
			pterm.Println()
			renderOpportunities(c.Opportunities)
		}
		return nil
	}),
}

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		if clientName == "" || clientEmail == "" {
			return errors.New("--name and --email are required")
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		c := model.Client{Name: clientName, Email: clientEmail, Phone: clientPhone}
		created, err := a.api.CreateClient(ctx, c)
		if err != nil {
			reportFailure(a.notifier, "creating the client", err)
			return errors.New("could not create the client")
		}
		a.notifier.Success(fmt.Sprintf("Client %q created with id %d", created.Name, created.ID))
		return nil
	}),
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a client",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		// Start from the current record so unset flags keep their values.
		c, err := a.api.GetClient(ctx, id)
		if err != nil {
			reportFailure(a.notifier, "fetching the client", err)
			return errors.New("could not fetch the client")
		}
		if clientName != "" {
			c.Name = clientName
		}
		if clientEmail != "" {
			c.Email = clientEmail
		}
		if clientPhone != "" {
			c.Phone = clientPhone
		}

		if _, err := a.api.UpdateClient(ctx, c); err != nil {
			reportFailure(a.notifier, "updating the client", err)
			return errors.New("could not update the client")
		}
		a.notifier.Success("Client updated successfully")
		return nil
	}),
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		if err := a.api.DeleteClient(ctx, id); err != nil {
			reportFailure(a.notifier, "deleting the client", err)
			return errors.New("could not delete the client")
		}
		a.notifier.Success("Client deleted")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientListCmd, clientGetCmd, clientCreateCmd, clientUpdateCmd, clientDeleteCmd)

	for _, c := range []*cobra.Command{clientCreateCmd, clientUpdateCmd} {
		c.Flags().StringVar(&clientName, "name", "", "Client name")
		c.Flags().StringVar(&clientEmail, "email", "", "Client e-mail")
		c.Flags().StringVar(&clientPhone, "phone", "", "Client phone")
	}
}

// parseID converts a positional argument into a record id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// renderClients prints the client list as a table.
func renderClients(clients []model.Client) {
	rows := pterm.TableData{{"ID", "Name", "E-mail", "Opportunities"}}
	for _, c := range clients {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			strconv.Itoa(len(c.Opportunities)),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
