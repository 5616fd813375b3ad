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
	oppTitle    string
	oppStatus   string
	oppValue    float64
	oppOpenedAt string
	oppClosedAt string
	oppClientID int64
)

// opportunityCmd groups the sales-pipeline operations.
var opportunityCmd = &cobra.Command{
	Use:     "opportunity",
	Aliases: []string{"opp", "opportunities"},
	Short:   "Manage sales opportunities",
}

var oppListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all opportunities",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		ctx, cancel := opCtx(cmd)
		defer cancel()

		opps, err := a.api.ListOpportunities(ctx)
		if err != nil {
			reportFailure(a.notifier, "fetching opportunities", err)
			return errors.New("could not fetch opportunities")
		}
		if len(opps) == 0 {
			pterm.Println("No opportunities registered yet.")
			return nil
		}
		renderOpportunities(opps)
		return nil
	}),
}

var oppGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one opportunity",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		o, err := a.api.GetOpportunity(ctx, id)
		if err != nil {
			reportFailure(a.notifier, "fetching the opportunity", err)
			return errors.New("could not fetch the opportunity")
		}

		pterm.Printf("Title:   %s\n", o.Title)
		pterm.Printf("Status:  %s\n", o.Status)
		pterm.Printf("Value:   %.2f\n", o.Value)
		if o.OpenedAt != "" {
			pterm.Printf("Opened:  %s\n", o.OpenedAt)
		}
		if o.ClosedAt != "" {
			pterm.Printf("Closed:  %s\n", o.ClosedAt)
		}
		if o.Client != nil {
			pterm.Printf("Client:  %s\n", o.Client.Name)
		}
		return nil
	}),
}

var oppCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an opportunity",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		if oppTitle == "" || oppClientID == 0 {
			return errors.New("--title and --client are required")
		}
		if err := validStatus(oppStatus); err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		cur := a.store.Current()
		o := model.Opportunity{
			Title:    oppTitle,
			Status:   oppStatus,
			Value:    oppValue,
			OpenedAt: oppOpenedAt,
			ClosedAt: oppClosedAt,
			Client:   &model.Client{ID: oppClientID},
			User:     &model.User{ID: cur.UserID},
		}
		created, err := a.api.CreateOpportunity(ctx, o)
		if err != nil {
			reportFailure(a.notifier, "creating the opportunity", err)
			return errors.New("could not create the opportunity")
		}
		a.notifier.Success(fmt.Sprintf("Opportunity %q created with id %d", created.Title, created.ID))
		return nil
	}),
}

var oppUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an opportunity",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("status") {
			if err := validStatus(oppStatus); err != nil {
				return err
			}
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		o, err := a.api.GetOpportunity(ctx, id)
		if err != nil {
			reportFailure(a.notifier, "fetching the opportunity", err)
			return errors.New("could not fetch the opportunity")
		}
		if oppTitle != "" {
			o.Title = oppTitle
		}
		if cmd.Flags().Changed("status") {
			o.Status = oppStatus
		}
		if cmd.Flags().Changed("value") {
			o.Value = oppValue
		}
		if oppOpenedAt != "" {
			o.OpenedAt = oppOpenedAt
		}
		if oppClosedAt != "" {
			o.ClosedAt = oppClosedAt
		}
		if oppClientID != 0 {
			o.Client = &model.Client{ID: oppClientID}
		}

		if _, err := a.api.UpdateOpportunity(ctx, o); err != nil {
			reportFailure(a.notifier, "updating the opportunity", err)
			return errors.New("could not update the opportunity")
		}
		a.notifier.Success("Opportunity updated successfully")
		return nil
	}),
}

var oppDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an opportunity",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opCtx(cmd)
		defer cancel()

		if err := a.api.DeleteOpportunity(ctx, id); err != nil {
			reportFailure(a.notifier, "deleting the opportunity", err)
			return errors.New("could not delete the opportunity")
		}
		a.notifier.Success("Opportunity deleted")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(opportunityCmd)
	opportunityCmd.AddCommand(oppListCmd, oppGetCmd, oppCreateCmd, oppUpdateCmd, oppDeleteCmd)

	for _, c := range []*cobra.Command{oppCreateCmd, oppUpdateCmd} {
		c.Flags().StringVar(&oppTitle, "title", "", "Opportunity title")
		c.Flags().StringVar(&oppStatus, "status", model.StatusOpen, `Status: "Aberta", "Fechada" or "Perdida"`)
		c.Flags().Float64Var(&oppValue, "value", 0, "Deal value")
		c.Flags().StringVar(&oppOpenedAt, "opened", "", "Opening date (YYYY-MM-DD)")
		c.Flags().StringVar(&oppClosedAt, "closed", "", "Closing date (YYYY-MM-DD)")
		c.Flags().Int64Var(&oppClientID, "client", 0, "Client id the opportunity belongs to")
	}
}

// validStatus checks a status flag against the backend's vocabulary.
func validStatus(s string) error {
	switch s {
	case model.StatusOpen, model.StatusWon, model.StatusLost:
		return nil
	}
	return fmt.Errorf("invalid status %q, expected %q, %q or %q", s, model.StatusOpen, model.StatusWon, model.StatusLost)
}

// renderOpportunities prints an opportunity table.
func renderOpportunities(opps []model.Opportunity) {
	rows := pterm.TableData{{"ID", "Title", "Status", "Value", "Client"}}
	for _, o := range opps {
		client := ""
		if o.Client != nil {
			client = o.Client.Name
		}
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10),
			o.Title,
			o.Status,
			fmt.Sprintf("%.2f", o.Value),
			client,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
