// Package db embeds the SQL migration files so production builds can
// run migrations without the source tree present.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
