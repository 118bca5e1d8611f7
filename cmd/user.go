package cmd

import (
	"context"
	"fmt"

	"github.com/jon4hz/whispernet/internal/database"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userStatusActive bool

var userStatusCmd = &cobra.Command{
	Use:     "status <username>",
	Short:   "Enable or disable a user account",
	Example: `whispernet user status troll --active=false`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		user, err := setUserStatus(cmd.Context(), db, args[0], userStatusActive)
		if err != nil {
			return err
		}
		fmt.Printf("User %q is now %s\n", user.Username, activeLabel(user.IsActive))
		return nil
	},
}

func init() {
	userStatusCmd.Flags().BoolVar(&userStatusActive, "active", true, "Whether the account is active")
	userCmd.AddCommand(userStatusCmd)
	rootCmd.AddCommand(userCmd)
}

func setUserStatus(ctx context.Context, db database.DB, username string, active bool) (*database.User, error) {
	user, err := db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return db.UpdateUserStatus(ctx, user.ID, active)
}
