// Package migrations ships the schema with the binary so migrate and the
// integration tests run from any working directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
