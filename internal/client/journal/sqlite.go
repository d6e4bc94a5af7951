package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/dbx"
)

// createdAtLayout sorts lexically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteRepository struct {
	db        *sql.DB
	retention int
}

// NewSQLiteRepository returns a repository over an already migrated
// database. retention <= 0 keeps every entry.
func NewSQLiteRepository(db *sql.DB, retention int) *SQLiteRepository {
	return &SQLiteRepository{db: db, retention: retention}
}

func (r *SQLiteRepository) Record(ctx context.Context, e Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO journal (id, operation, target, subject, outcome, detail, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, query, e.ID, e.Operation, e.Target, e.Subject, string(e.Outcome), e.Detail,
			e.CreatedAt.UTC().Format(createdAtLayout))
		if err != nil {
			return fmt.Errorf("failed to insert journal entry: %w", err)
		}
		return trim(ctx, tx, r.retention, false)
	})
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, operation, target, subject, outcome, detail, created_at
		FROM journal ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e       Entry
			outcome string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Operation, &e.Target, &e.Subject, &outcome, &e.Detail, &created); err != nil {
			return nil, err
		}
		e.Outcome = Outcome(outcome)
		if e.CreatedAt, err = time.Parse(createdAtLayout, created); err != nil {
			return nil, fmt.Errorf("journal entry %s: bad created_at %q: %w", e.ID, created, err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// trim deletes all but the newest keep entries.
func trim(ctx context.Context, tx dbx.DBTX, keep int, postgres bool) error {
	if keep <= 0 {
		return nil
	}
	query := `DELETE FROM journal WHERE seq <= (SELECT MAX(seq) FROM journal) - ?`
	if postgres {
		query = dbx.Rebind(query)
	}
	if _, err := tx.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("failed to trim journal: %w", err)
	}
	return nil
}
