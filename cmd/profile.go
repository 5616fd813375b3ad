// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"kavio/cli/internal/model"

	"github.com/spf13/cobra"
)

var (
	profileNewName  string
	profileNewPhoto string
)

// profileCmd shows the authenticated user's profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		cur := a.store.Current()
		fmt.Printf("Name:    %s\n", cur.DisplayName)
		fmt.Printf("E-mail:  %s\n", cur.LoginHandle)
		if cur.AvatarURL != "" {
			fmt.Printf("Avatar:  %s\n", cur.AvatarURL)
		}
		return nil
	}),
}

// profileUpdateCmd pushes display-name/avatar changes to the backend.
var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update display name or avatar",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		if profileNewName == "" && profileNewPhoto == "" {
			return fmt.Errorf("nothing to update, pass --name or --photo")
		}

		cur := a.store.Current()
		user := model.User{
			Name:   cur.DisplayName,
			Handle: cur.LoginHandle,
			Photo:  cur.AvatarURL,
		}
		if profileNewName != "" {
			user.Name = profileNewName
		}
		if profileNewPhoto != "" {
			user.Photo = profileNewPhoto
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		// Outcome lands on the notification channel either way.
		_ = a.svc.UpdateProfile(ctx, user)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileUpdateCmd.Flags().StringVar(&profileNewName, "name", "", "New display name")
	profileUpdateCmd.Flags().StringVar(&profileNewPhoto, "photo", "", "New avatar URL")
}
