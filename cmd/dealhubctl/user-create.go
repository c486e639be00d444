package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealhub/dealhub/pkg/db"
	"github.com/dealhub/dealhub/pkg/model"
	gormstore "github.com/dealhub/dealhub/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a user account",
	Long: `Create a user account.

If no password is provided with --password, a random one is generated
and printed to STDOUT.

Example:
  dealhubctl user create buyer@example.com
  dealhubctl user create admin@example.com --role admin
  dealhubctl user create shop@example.com --role merchant --name "The Shop"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := strings.ToLower(strings.TrimSpace(args[0]))
		role, _ := cmd.Flags().GetString("role")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")

		if err := createUser(email, role, name, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", "user", "Role (user, merchant, or admin)")
	userCreateCmd.Flags().StringP("name", "n", "", "Display name")
	userCreateCmd.Flags().String("password", "", "Password (generated if empty)")
}

func createUser(email, role, name, password string) error {
	switch role {
	case "user", "merchant", "admin":
	default:
		return fmt.Errorf("invalid role %q (must be user, merchant, or admin)", role)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	users := gormstore.NewUsersStore(database)

	exists, err := users.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("an account with email %s already exists", email)
	}

	generated := password == ""
	if generated {
		raw := make([]byte, 18)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(raw)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  []string{},
		Wishlist:     []string{},
	}
	if err := users.CreateUser(user); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created %s account '%s' (%s)\n", role, email, user.ID)
	if generated {
		fmt.Printf("Password for %s: %s\n", email, password)
	}
	return nil
}
