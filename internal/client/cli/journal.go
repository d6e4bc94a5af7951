package cli

import (
	"context"
	"fmt"
)

// recentLimit is how many journal entries RecentOperations shows.
const recentLimit = 20

// RecentOperations prints the latest journaled operations, newest first.
func (a *App) RecentOperations(ctx context.Context) error {
	defer a.finish(nil)

	if a.journal == nil {
		fmt.Fprintln(a.out, "\nINFORMATION-> operation journal is not configured (set journal_dsn)")
		return nil
	}

	entries, err := a.journal.Recent(ctx, recentLimit)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "\nINFORMATION-> no operations recorded")
		return nil
	}
	writeJournal(a.out, entries)
	return nil
}
