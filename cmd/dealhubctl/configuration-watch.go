package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch the config file and reload the server when it changes",
	Long: `Watch the configuration file and signal the running Dealhub server to
reload whenever it is modified.

The file to watch defaults to the active config file. Invalid
configuration is reported and skipped rather than applied.

Example:
  dealhubctl configuration watch
  dealhubctl configuration watch /etc/dealhub/config/dealhub.yml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := ""
		if len(args) > 0 {
			filename = args[0]
		}

		if err := watchConfiguration(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
}

func watchConfiguration(filename string) error {
	if filename == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		filename = cfg.ConfigFilePath()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for configuration changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, validating...\n", time.Now().Format(time.RFC3339))

				cfg, err := config.Load()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
					continue
				}
				if err := cfg.Validate(); err != nil {
					fmt.Fprintf(os.Stderr, "Invalid configuration, not applying: %v\n", err)
					continue
				}

				pid, err := signalServerReload()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error signaling server: %v\n", err)
					continue
				}
				fmt.Printf("Sent reload signal to process %d\n", pid)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
