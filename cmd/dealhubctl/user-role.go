package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/db"
	"github.com/dealhub/dealhub/pkg/rbac"
	"github.com/dealhub/dealhub/pkg/server/store"
	gormstore "github.com/dealhub/dealhub/pkg/server/store/gorm"
)

// userRoleSetCmd represents the user role-set command
var userRoleSetCmd = &cobra.Command{
	Use:   "role-set <email> <role>",
	Short: "Set a user's role",
	Long: `Set a user's role.

Example:
  dealhubctl user role-set shop@example.com merchant`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		email := strings.ToLower(strings.TrimSpace(args[0]))
		role := args[1]

		if err := setUserRole(email, role); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set role: %v\n", err)
			os.Exit(1)
		}
	},
}

// userPermissionsSetCmd represents the user permissions-set command
var userPermissionsSetCmd = &cobra.Command{
	Use:   "permissions-set <email> [grant...]",
	Short: "Set a user's permission grants",
	Long: `Replace a user's permission grants.

Grants are any of add, edit, delete. An edit grant implies add, so the
stored set is normalized. Passing no grants clears them all.

Example:
  dealhubctl user permissions-set shop@example.com add edit
  dealhubctl user permissions-set shop@example.com`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := strings.ToLower(strings.TrimSpace(args[0]))

		if err := setUserPermissions(email, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set permissions: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userRoleSetCmd)
	userCmd.AddCommand(userPermissionsSetCmd)
}

func userStoreByEmail(email string) (store.UsersStore, string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, "", err
	}
	users := gormstore.NewUsersStore(database)

	user, err := users.FetchUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", fmt.Errorf("no account with email %s", email)
		}
		return nil, "", err
	}
	return users, user.ID, nil
}

func setUserRole(email, role string) error {
	switch role {
	case "user", "merchant", "admin":
	default:
		return fmt.Errorf("invalid role %q (must be user, merchant, or admin)", role)
	}

	users, id, err := userStoreByEmail(email)
	if err != nil {
		return err
	}
	if err := users.UpdateRole(id, role); err != nil {
		return err
	}

	fmt.Printf("Set role of %s to %s\n", email, role)
	return nil
}

func setUserPermissions(email string, grants []string) error {
	for _, g := range grants {
		switch g {
		case "add", "edit", "delete":
		default:
			return fmt.Errorf("invalid grant %q (must be add, edit, or delete)", g)
		}
	}
	normalized := rbac.NormalizePermissions(rbac.FromStrings(grants)).Strings()

	users, id, err := userStoreByEmail(email)
	if err != nil {
		return err
	}
	if err := users.UpdatePermissions(id, normalized); err != nil {
		return err
	}

	fmt.Printf("Set permissions of %s to [%s]\n", email, strings.Join(normalized, ", "))
	return nil
}
