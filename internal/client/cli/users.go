package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/client/services"
)

var errNoUserService = fmt.Errorf("%w: user service is not configured", services.ErrPrecondition)

// GetUserBySignInName prints the user with the given sign-in name and their
// group memberships.
func (a *App) GetUserBySignInName(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	name, _ := readField(a.reader, a.out, "user name")
	if name == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	u, err := a.users.GetBySignInName(ctx, name)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.showUser(ctx, u, name)
}

func (a *App) GetUserByDisplayName(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	name, _ := readField(a.reader, a.out, "display name")
	if name == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	u, err := a.users.GetByDisplayName(ctx, name)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.showUser(ctx, u, name)
}

func (a *App) GetUserByObjectID(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	id, ok := readObjectID(a.reader, a.out, "user object ID")
	if !ok {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	u, err := a.users.GetByObjectID(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.showUser(ctx, u, id)
}

// showUser prints a lookup result; a found user is enriched with its group
// memberships.
func (a *App) showUser(ctx context.Context, u models.Option[models.User], key string) error {
	user, ok := u.Get()
	if !ok {
		fmt.Fprintf(a.out, "\ninformation-> unable to locate user using: %s\n", key)
		return nil
	}
	writeUser(a.out, user)

	refs, err := a.users.GroupMembershipByID(ctx, user.ID)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeMemberships(a.out, refs)
	return nil
}

func (a *App) ListUsers(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	limit, ok := readLimit(a.reader, a.out, "limit (top users)")
	if !ok {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	users, err := a.users.List(ctx, limit)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeUsers(a.out, users)
	return nil
}

func (a *App) ListUsersByName(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	prefix, _ := readField(a.reader, a.out, "display name")
	if prefix == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	users, err := a.users.ListByName(ctx, prefix)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeUsers(a.out, users)
	return nil
}

// CreateUser prompts for the new user's fields. User name, password and
// display name are required; the rest may be left empty.
func (a *App) CreateUser(ctx context.Context) error {
	defer a.finish(nil)
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	var (
		u   models.NewUser
		err error
	)
	u.UserName, _ = readField(a.reader, a.out, "user name")
	u.Password, err = readSecret(a.reader, a.out, "password")
	if err != nil {
		return a.fail(ctx, err)
	}
	u.DisplayName, _ = readField(a.reader, a.out, "display name")
	if u.UserName == "" || u.Password == "" || u.DisplayName == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"given name", &u.GivenName},
		{"surname", &u.Surname},
		{"street address", &u.StreetAddress},
		{"city", &u.City},
		{"state", &u.State},
		{"postal code", &u.PostalCode},
		{"company name", &u.CompanyName},
		{"department", &u.Department},
	} {
		*f.dst, _ = readField(a.reader, a.out, f.label)
	}

	id, err := a.users.Create(ctx, u)
	if errors.Is(err, services.ErrAlreadyExists) {
		fmt.Fprintln(a.out, "\nerror-> username already exists (choose another username)")
		return err
	}
	if err != nil {
		return a.fail(ctx, err)
	}

	fmt.Fprintln(a.out)
	userLine(a.out, "user object ID", id)
	return nil
}

func (a *App) DeleteUser(ctx context.Context) error {
	var status *bool
	defer func() { a.finish(status) }()
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	name, _ := readField(a.reader, a.out, "user name")
	if name == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	ok, err := a.users.Delete(ctx, name)
	if err != nil {
		return a.fail(ctx, err)
	}
	if !ok {
		fmt.Fprintf(a.out, "\ninformation-> unable to locate user using: %s\n", name)
	}
	status = &ok
	return nil
}

func (a *App) SetUserPassword(ctx context.Context) error {
	var status *bool
	defer func() { a.finish(status) }()
	if a.users == nil {
		return a.fail(ctx, errNoUserService)
	}

	name, _ := readField(a.reader, a.out, "user name")
	password, err := readSecret(a.reader, a.out, "replacement password")
	if err != nil {
		return a.fail(ctx, err)
	}
	if name == "" || password == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	ok, err := a.users.SetPassword(ctx, name, password)
	if err != nil {
		return a.fail(ctx, err)
	}
	if !ok {
		fmt.Fprintf(a.out, "\ninformation-> unable to locate user using: %s\n", name)
	}
	status = &ok
	return nil
}
