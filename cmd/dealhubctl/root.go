package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dealhubctl",
	Short: "Dealhub command-line interface",
	Long: `dealhubctl manages the Dealhub marketplace server.

It runs the HTTP server, applies database migrations, manages user
accounts and roles, and inspects configuration.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
