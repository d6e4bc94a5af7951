package services

import "errors"

var (
	// ErrInvalidInput reports a missing or malformed required value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists reports a create that would duplicate an object.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPrecondition reports a missing collaborator.
	ErrPrecondition = errors.New("precondition failed")
)
