// Package migrations embeds the goose migrations for every supported SQL backend.
// Each backend's files live in a directory named after its goose dialect.
package migrations

import "embed"

// FS holds the postgres/ and sqlite/ migration directories
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
