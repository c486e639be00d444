package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/db"
	gormstore "github.com/dealhub/dealhub/pkg/server/store/gorm"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Long: `List user accounts, newest first.

Example:
  dealhubctl user list
  dealhubctl user list --search smith --limit 50`,
	Run: func(cmd *cobra.Command, args []string) {
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		if err := listUsers(search, limit); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userListCmd.Flags().StringP("search", "s", "", "Filter by email or display name")
	userListCmd.Flags().IntP("limit", "l", 20, "Maximum number of users to show")
}

func listUsers(search string, limit int) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	users := gormstore.NewUsersStore(database)

	results, err := users.ListUsers(search, limit, 0)
	if err != nil {
		return err
	}
	total, err := users.CountUsers(search)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tROLE\tPERMISSIONS")
	for _, u := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, strings.Join(u.Permissions, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("Showing %d of %d user(s)\n", len(results), total)
	return nil
}
