package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/session"
)

// configurationApplyCmd represents the configuration apply command
var configurationApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Signal the Dealhub server to apply new configuration",
	Long: `Validate the current state of the configuration file and then signal the
Dealhub server to pick up any changes.

Note that this will NOT incorporate changes to environment variables because
Linux process environments are static once a process has started.

Use --test to validate configuration without signaling.

Example:
  dealhubctl configuration apply
  dealhubctl configuration apply --test`,
	Run: func(cmd *cobra.Command, args []string) {
		testMode, _ := cmd.Flags().GetBool("test")

		if err := applyConfiguration(testMode); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to apply configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationApplyCmd)
	configurationApplyCmd.Flags().Bool("test", false, "Validate configuration without signaling the server")
}

func applyConfiguration(testMode bool) error {
	fmt.Println("Validating configuration...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("Config file: %s\n", cfg.ConfigFilePath())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Check required environment variables
	if os.Getenv("DATABASE_URL") == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if os.Getenv(session.SecretEnvVar) == "" {
		return fmt.Errorf("%s is not set", session.SecretEnvVar)
	}

	fmt.Println("Configuration is valid.")

	if testMode {
		fmt.Println("Test mode: not signaling server.")
		return nil
	}

	fmt.Println("Sending reload signal to server...")
	pid, err := signalServerReload()
	if err != nil {
		return err
	}

	fmt.Printf("Sent reload signal to process %d\n", pid)
	fmt.Println("Server will reload configuration.")

	return nil
}

// signalServerReload finds the running dealhubctl server process and
// sends SIGHUP to trigger a configuration reload.
func signalServerReload() (int, error) {
	pgrep := exec.Command("pgrep", "-f", "dealhubctl server")
	output, err := pgrep.Output()
	if err != nil {
		return 0, fmt.Errorf("no running dealhubctl server found")
	}

	var pid int
	if _, err := fmt.Sscanf(string(output), "%d", &pid); err != nil {
		return 0, fmt.Errorf("failed to parse PID: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGHUP); err != nil {
		return 0, fmt.Errorf("failed to send signal: %w", err)
	}
	return pid, nil
}
