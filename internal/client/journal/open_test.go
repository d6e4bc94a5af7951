package journal

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("journal.db"))
	assert.False(t, IsPostgres("file:journal.db?cache=shared"))
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, RunMigrations(context.Background(), db, "postgres", "postgres"))
	assert.Equal(t, "postgres", gotDir)

	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error { return errors.New("boom") }
	assert.EqualError(t, RunMigrations(context.Background(), db, "postgres", "postgres"), "boom")

	assert.Error(t, RunMigrations(context.Background(), db, "no-such-dialect", "x"))
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard().Record(context.Background(), NewEntry("op", "t", "", OutcomeOK, "")))
}
