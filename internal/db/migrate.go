package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func migrate(ctx context.Context, conn *sql.DB, dialect goose.Dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}

	if err := gooseUpContext(ctx, conn, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}

	return nil
}

// MigratePostgres opens a short-lived database/sql handle for goose and
// runs the embedded postgres migrations.
func MigratePostgres(ctx context.Context, dsn string) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer conn.Close()

	return migrate(ctx, conn, goose.DialectPostgres, "migrations/postgres")
}

func MigrateSQLite(ctx context.Context, conn *sql.DB) error {
	return migrate(ctx, conn, goose.DialectSQLite3, "migrations/sqlite")
}
