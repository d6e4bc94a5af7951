package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT); DELETE FROM t;`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		db := setupDB(t)
		err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('ok')`)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countRows(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := setupDB(t)
		boom := errors.New("boom")
		err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('fail')`)
			require.NoError(t, e)
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, countRows(t, db))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		db := setupDB(t)
		require.Panics(t, func() {
			_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
				_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('panic')`)
				require.NoError(t, e)
				panic("kaput")
			})
		})
		assert.Equal(t, 0, countRows(t, db))
	})

	t.Run("begin fails on closed db", func(t *testing.T) {
		db := setupDB(t)
		require.NoError(t, db.Close())
		err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error { return nil })
		require.Error(t, err)
	})
}

func TestRebind(t *testing.T) {
	tests := []struct{ in, want string }{
		{`SELECT 1`, `SELECT 1`},
		{`INSERT INTO j (a, b) VALUES (?, ?)`, `INSERT INTO j (a, b) VALUES ($1, $2)`},
		{`SELECT * FROM j WHERE a = '?' AND b = ?`, `SELECT * FROM j WHERE a = '?' AND b = $1`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rebind(tt.in))
	}
}
