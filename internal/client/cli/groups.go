package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/client/services"
)

var errNoGroupService = fmt.Errorf("%w: group service is not configured", services.ErrPrecondition)

// GetGroupByName prints the group with the given display name followed by
// its members and owners.
func (a *App) GetGroupByName(ctx context.Context) error {
	defer a.finish(nil)
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	name, _ := readField(a.reader, a.out, "GROUP NAME")
	if name == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	g, err := a.groups.GetByName(ctx, name)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.showGroup(ctx, g, name)
}

func (a *App) GetGroupByObjectID(ctx context.Context) error {
	defer a.finish(nil)
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	id, ok := readObjectID(a.reader, a.out, "GROUP OBJECT ID")
	if !ok {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	g, err := a.groups.GetByObjectID(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.showGroup(ctx, g, id)
}

func (a *App) showGroup(ctx context.Context, g models.Option[models.Group], key string) error {
	group, ok := g.Get()
	if !ok {
		fmt.Fprintf(a.out, "\nINFORMATION-> group not found: %s\n", key)
		return nil
	}
	writeGroup(a.out, group)

	members, err := a.groups.MembersByID(ctx, group.ID)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeMembers(a.out, "MEMBER", members)

	owners, err := a.groups.OwnersByID(ctx, group.ID)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeMembers(a.out, "OWNER", owners)
	return nil
}

func (a *App) ListGroups(ctx context.Context) error {
	defer a.finish(nil)
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	limit, ok := readLimit(a.reader, a.out, "LIMIT (TOP GROUPS)")
	if !ok {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	groups, err := a.groups.List(ctx, limit)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeGroups(a.out, groups)
	return nil
}

func (a *App) ListGroupsByName(ctx context.Context) error {
	defer a.finish(nil)
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	prefix, _ := readField(a.reader, a.out, "GROUP NAME")
	if prefix == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	groups, err := a.groups.ListByName(ctx, prefix)
	if err != nil {
		return a.fail(ctx, err)
	}
	writeGroups(a.out, groups)
	return nil
}

// CreateGroup creates a unified group. An empty mail nickname is derived
// from the display name.
func (a *App) CreateGroup(ctx context.Context) error {
	defer a.finish(nil)
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	var g models.NewGroup
	g.DisplayName, _ = readField(a.reader, a.out, "DISPLAY NAME")
	g.Description, _ = readField(a.reader, a.out, "DESCRIPTION")
	g.MailNickname, _ = readField(a.reader, a.out, "MAIL NICK NAME")
	if g.DisplayName == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	id, err := a.groups.Create(ctx, g)
	if errors.Is(err, services.ErrAlreadyExists) {
		fmt.Fprintln(a.out, "\nINFORMATION-> display name already exists (choose another group display name)")
		return err
	}
	if err != nil {
		return a.fail(ctx, err)
	}

	fmt.Fprintln(a.out)
	groupLine(a.out, "GROUP OBJECT ID", id)
	return nil
}

func (a *App) DeleteGroup(ctx context.Context) error {
	var status *bool
	defer func() { a.finish(status) }()
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	name, _ := readField(a.reader, a.out, "GROUP NAME")
	if name == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	ok, err := a.groups.Delete(ctx, name)
	if err != nil {
		return a.fail(ctx, err)
	}
	if !ok {
		fmt.Fprintf(a.out, "\nINFORMATION-> group not found: %s\n", name)
	}
	status = &ok
	return nil
}

func (a *App) AddGroupOwner(ctx context.Context) error {
	return a.link(ctx, services.GroupService.AddOwner)
}

func (a *App) RemoveGroupOwner(ctx context.Context) error {
	return a.link(ctx, services.GroupService.RemoveOwner)
}

func (a *App) AddGroupMember(ctx context.Context) error {
	return a.link(ctx, services.GroupService.AddMember)
}

func (a *App) RemoveGroupMember(ctx context.Context) error {
	return a.link(ctx, services.GroupService.RemoveMember)
}

// link reads a group name and a user name and applies op to the pair.
func (a *App) link(ctx context.Context, op func(services.GroupService, context.Context, string, string) (bool, error)) error {
	var status *bool
	defer func() { a.finish(status) }()
	if a.groups == nil {
		return a.fail(ctx, errNoGroupService)
	}

	group, _ := readField(a.reader, a.out, "GROUP NAME")
	user, _ := readField(a.reader, a.out, "USER NAME")
	if group == "" || user == "" {
		return a.fail(ctx, services.ErrInvalidInput)
	}

	ok, err := op(a.groups, ctx, group, user)
	if err != nil {
		return a.fail(ctx, err)
	}
	if !ok {
		fmt.Fprintf(a.out, "\nINFORMATION-> group or user not found: %s / %s\n", group, user)
	}
	status = &ok
	return nil
}
