// Package model defines the database models for Dealhub.
//
// This package contains GORM models that map to the Dealhub PostgreSQL
// schema. Each table corresponds to one collection of the marketplace:
//
//   - User: shopper/merchant/admin accounts with role, permission set
//     and wishlist
//   - Product: a merchant's discounted deal listing
//   - Ad: a promotional banner placed by a merchant
//   - ActionButton: a call-to-action attached to a product
//   - Merchant: a merchant's public business details
package model
