// Package db provides the embedded database schema.
package db

import _ "embed"

// Schema contains the DDL for every application table. It is written to be
// idempotent so the server can apply it on each start.
//
//go:embed migrations/001_schema.sql
var Schema string
