package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd displays the current authenticated account, if any.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command displays information about the currently
authenticated account from the stored session.

If no session exists, it will indicate that the user is not logged in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		cur := a.store.Current()
		if cur.Anonymous() {
			fmt.Println("🔒 You're not logged in yet!")
			fmt.Println("   Run 'kavio login' to get started.")
			return nil
		}

		fmt.Printf("👤 Current user: %s <%s>\n", cur.DisplayName, cur.LoginHandle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
