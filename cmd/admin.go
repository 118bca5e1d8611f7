package cmd

import (
	"context"
	"fmt"

	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/password"
	"github.com/jon4hz/whispernet/internal/schema"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

type adminCreateOptions struct {
	Username    string
	DisplayName string
	Password    string
	Role        string
}

var adminCreateFlags adminCreateOptions

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Example: `whispernet admin create --username keeper --display-name Keeper --password hunter22
whispernet admin create --username observer --display-name Observer --role moderator`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		admin, err := createAdmin(cmd.Context(), db, adminCreateFlags)
		if err != nil {
			return err
		}
		fmt.Printf("Created admin %q (id %d, role %s)\n", admin.Username, admin.ID, admin.Role)
		return nil
	},
}

var adminStatusActive bool

var adminStatusCmd = &cobra.Command{
	Use:     "status <username>",
	Short:   "Enable or disable an admin account",
	Example: `whispernet admin status keeper --active=false`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		admin, err := setAdminStatus(cmd.Context(), db, args[0], adminStatusActive)
		if err != nil {
			return err
		}
		fmt.Printf("Admin %q is now %s\n", admin.Username, activeLabel(admin.IsActive))
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminCreateFlags.Username, "username", "", "Username of the admin")
	adminCreateCmd.Flags().StringVar(&adminCreateFlags.DisplayName, "display-name", "", "Display name of the admin")
	adminCreateCmd.Flags().StringVar(&adminCreateFlags.Password, "password", "", "Password of the admin, admins without password cannot log in")
	adminCreateCmd.Flags().StringVar(&adminCreateFlags.Role, "role", database.DefaultAdminRole, "Role of the admin (admin, moderator, superadmin)")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("display-name")

	adminStatusCmd.Flags().BoolVar(&adminStatusActive, "active", true, "Whether the account is active")

	adminCmd.AddCommand(adminCreateCmd, adminStatusCmd)
	rootCmd.AddCommand(adminCmd)
}

// createAdmin validates opts like the api payload and stores the admin.
func createAdmin(ctx context.Context, db database.DB, opts adminCreateOptions) (*database.Admin, error) {
	payload := schema.CreateAdmin{
		Username:    opts.Username,
		DisplayName: opts.DisplayName,
		Role:        opts.Role,
	}
	if opts.Password != "" {
		payload.Password = &opts.Password
	}
	if err := schema.New(0).Struct(&payload); err != nil {
		return nil, err
	}

	admin := &database.Admin{
		Username:    payload.Username,
		DisplayName: payload.DisplayName,
		Role:        payload.Role,
	}
	if payload.Password != nil {
		hash, err := password.Hash(*payload.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin.Password = &hash
	}

	if err := db.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin %q: %w", payload.Username, err)
	}
	return admin, nil
}

func setAdminStatus(ctx context.Context, db database.DB, username string, active bool) (*database.Admin, error) {
	admin, err := db.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find admin %q: %w", username, err)
	}
	return db.UpdateAdminStatus(ctx, admin.ID, active)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "disabled"
}
