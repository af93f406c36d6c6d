package database

import "embed"

// Migrations holds the versioned schema files applied at startup.
//
//go:embed migration/*.sql
var Migrations embed.FS

const MigrationDir = "migration"
