package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/blob"
	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/db"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/endpoints"
	"github.com/dealhub/dealhub/pkg/session"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Dealhub application server",
	Long: `Run the Dealhub application server.

To run the server requires the environment variables DEALHUB_SESSION_SECRET
and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		if os.Getenv(session.SecretEnvVar) == "" {
			fmt.Fprintf(os.Stderr, "%s environment variable is required\n", session.SecretEnvVar)
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		cfg := config.Get()

		signer, err := session.NewSignerFromEnv(cfg.SessionTTL())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create session signer:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, signer, host, port)

		// Object storage is optional; upload endpoints return 503
		// without it.
		if os.Getenv("MINIO_ENDPOINT") != "" || cfg.UploadsEndpoint != "" {
			blobStore, err := blob.New(context.Background(), blob.ConfigFromEnv(
				cfg.UploadsEndpoint, cfg.UploadsUseSSL, cfg.UploadsBucket,
			))
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to object storage:", err)
				os.Exit(1)
			}
			s.Blob = blobStore
		} else {
			log.Println("No object storage configured; uploads are disabled")
		}

		endpoints.RegisterAll(s)

		// SIGHUP reloads configuration, sent by "configuration apply"
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		go func() {
			for range sigChan {
				log.Println("Reloading configuration...")
				if err := config.Reload(); err != nil {
					log.Println("Configuration reload failed:", err)
				}
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
