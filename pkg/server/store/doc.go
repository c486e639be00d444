// Package store provides storage abstractions for the Dealhub server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - UsersStore: accounts, roles, permission grants, wishlists
//   - ProductsStore: listings, search, view counters
//   - AdsStore: promotional banners
//   - ActionButtonsStore: per-product call-to-action buttons
//   - MerchantsStore: merchant business details
//   - HealthStore: connectivity checks
package store
