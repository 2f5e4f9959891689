// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files of each driver under migrations/<driver>/.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
