// Package server provides the HTTP server for the Dealhub API.
//
// This package implements the core HTTP server that handles all Dealhub
// REST API requests. It uses gorilla/mux for routing and provides
// middleware for session authentication.
//
// # Server Setup
//
//	srv := server.NewServer(db, signer, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage. This
// registers all standard Dealhub API endpoints including:
//
//   - /authn/login and /authn/signup - session authentication
//   - /products - deal listings, search and view counters
//   - /ads - promotional banners
//   - /merchants/{id} - merchant business details
//   - /users - account administration
//   - /wishlist - optimistic wishlist sync
//   - /uploads - media storage
//   - /whoami and /status - introspection and health
package server
