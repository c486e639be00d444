// Package main implements dealhubctl, the CLI for the Dealhub marketplace server.
//
// Dealhub is a multi-tenant marketplace where merchants list products and
// buyers browse, wishlist, and buy them. Access is governed by a role and
// permission resolver, and wishlist writes go through an optimistic sync
// engine that applies changes locally before the database confirms them.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and their GORM implementations
//   - pkg/rbac: role and permission resolution
//   - pkg/optimistic: optimistic client-state sync engine
//   - pkg/session: session token minting and verification
//   - pkg/blob: object storage for uploaded images
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
// The server is run via the dealhubctl CLI:
//
//	# Set the session signing secret
//	export DEALHUB_SESSION_SECRET=$(head -c 32 /dev/urandom | base64)
//
//	# Run database migrations
//	dealhubctl db migrate
//
//	# Create an admin user
//	dealhubctl user create admin@example.com --role admin
//
//	# Start the server
//	dealhubctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - DEALHUB_SESSION_SECRET: Secret for signing session tokens
//   - DEALHUB_LOG_LEVEL: Log level (debug enables SQL query logging)
//   - MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY: Object storage
//   - PORT: Server port (default: 8000)
package main
