// Package journal records the mutating operations performed from the
// console so an operator can review what was changed and with what outcome.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how an operation ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Entry is one journaled operation. Target is the object acted on (a user
// or group name); Subject is the second party, if any (the member added to a
// group).
type Entry struct {
	ID        string
	Operation string
	Target    string
	Subject   string
	Outcome   Outcome
	Detail    string
	CreatedAt time.Time
}

// NewEntry returns an entry with a fresh id and the current time.
func NewEntry(operation, target, subject string, outcome Outcome, detail string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Operation: operation,
		Target:    target,
		Subject:   subject,
		Outcome:   outcome,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder appends entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Repository is a Recorder that can also list what it recorded.
type Repository interface {
	Recorder

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	Close() error
}

type discard struct{}

func (discard) Record(context.Context, Entry) error { return nil }

// Discard returns a Recorder that drops every entry.
func Discard() Recorder { return discard{} }
