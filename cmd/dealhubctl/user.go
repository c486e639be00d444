package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Manage user accounts, roles, and permission grants.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, list, role-set, permissions-set)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
