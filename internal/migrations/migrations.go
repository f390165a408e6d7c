// Package migrations holds the PostgreSQL schema as goose SQL files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Commands accepted by Run.
var Commands = []string{"up", "down", "status", "version"}

// Open connects with the lib/pq driver; gorm keeps its own pool.
func Open(uri string) (*sql.DB, error) {
	if uri == "" {
		return nil, fmt.Errorf("POSTGRES_URI environment variable is not set")
	}
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Run executes a goose command against db using the embedded files.
func Run(ctx context.Context, db *sql.DB, command string) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, db, ".")
}
