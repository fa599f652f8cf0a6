// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

// Package migrations embeds the database schema and applies it with goose.
// Each supported dialect keeps its own set of migration files.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Supported dialects. They match the storage driver names from the config.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var (
	errNilDB              = errors.New("db is nil")
	errUnsupportedDialect = errors.New("unsupported dialect")
)

// gooseDialects maps our dialect names to the goose ones.
var gooseDialects = map[string]string{
	DialectPostgres: "pgx",
	DialectSQLite:   "sqlite3",
}

// SetLogger routes goose output through l.
func SetLogger(l goose.Logger) {
	goose.SetLogger(l)
}

// Migrate applies every pending migration of the dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: %w %q", errUnsupportedDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
