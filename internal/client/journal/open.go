package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdir/internal/client/journal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DefaultRetention is the number of entries kept by Open'ed repositories.
const DefaultRetention = 1000

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// IsPostgres reports whether dsn selects the PostgreSQL backend.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the journal at dsn and applies pending migrations.
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is an
// SQLite file path or DSN.
func Open(ctx context.Context, dsn string) (Repository, error) {
	driver, dialect, dir := "sqlite", "sqlite3", "sqlite"
	if IsPostgres(dsn) {
		driver, dialect, dir = "pgx", "postgres", "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY between the insert and the trim
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, dialect, dir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	if driver == "pgx" {
		return NewPostgresRepository(db, DefaultRetention), nil
	}
	return NewSQLiteRepository(db, DefaultRetention), nil
}

// RunMigrations applies the embedded migrations in dir for dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.FS)
	// migration progress would interleave with the menus on the terminal
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUp(ctx, db, dir)
}
