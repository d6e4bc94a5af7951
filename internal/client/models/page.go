package models

// Page is one page of a listing. Next is the opaque cursor of the following
// page; an empty Next means the listing is exhausted.
type Page[T any] struct {
	Items []T
	Next  string
}

// Resolved is the outcome of resolving one reference (member, owner or
// group membership). Value is absent when the lookup found nothing. Err is
// set when the lookup failed; other references are unaffected.
type Resolved[T any] struct {
	ID    string
	Value Option[T]
	Err   error
}

// Member is a resolved group member or owner.
type Member = Resolved[User]

// GroupRef is a resolved group membership of a user.
type GroupRef = Resolved[Group]
