package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophdir/internal/dbx"
)

type PostgresRepository struct {
	db        *sql.DB
	retention int
}

func NewPostgresRepository(db *sql.DB, retention int) *PostgresRepository {
	return &PostgresRepository{db: db, retention: retention}
}

func (r *PostgresRepository) Record(ctx context.Context, e Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := dbx.Rebind(`INSERT INTO journal (id, operation, target, subject, outcome, detail, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		_, err := tx.ExecContext(ctx, query, e.ID, e.Operation, e.Target, e.Subject, string(e.Outcome), e.Detail, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert journal entry: %w", err)
		}
		return trim(ctx, tx, r.retention, true)
	})
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := dbx.Rebind(`SELECT id, operation, target, subject, outcome, detail, created_at
		FROM journal ORDER BY seq DESC LIMIT ?`)
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
		)
		if err := rows.Scan(&e.ID, &e.Operation, &e.Target, &e.Subject, &outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Outcome = Outcome(outcome)
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
