package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/logging"
)

// Journal operation names.
const (
	OpCreateUser   = "create user"
	OpDeleteUser   = "delete user"
	OpSetPassword  = "set password"
	OpCreateGroup  = "create group"
	OpDeleteGroup  = "delete group"
	OpAddMember    = "add member"
	OpRemoveMember = "remove member"
	OpAddOwner     = "add owner"
	OpRemoveOwner  = "remove owner"
)

// auditor writes operation outcomes to the journal. Journal failures are
// logged and otherwise ignored.
type auditor struct {
	rec    journal.Recorder
	logger logging.Logger
}

func newAuditor(rec journal.Recorder, logger logging.Logger) auditor {
	if rec == nil {
		rec = journal.Discard()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return auditor{rec: rec, logger: logger}
}

func (a auditor) record(ctx context.Context, op, target, subject string, found bool, err error) {
	outcome, detail := journal.OutcomeOK, ""
	switch {
	case err != nil && !errors.Is(err, ErrInvalidInput):
		outcome, detail = journal.OutcomeError, err.Error()
	case err != nil:
		return
	case !found:
		outcome = journal.OutcomeNotFound
	}

	if jerr := a.rec.Record(ctx, journal.NewEntry(op, target, subject, outcome, detail)); jerr != nil {
		a.logger.Warn(ctx, "journal write failed", "operation", op, "target", target, "error", jerr)
	}
}
