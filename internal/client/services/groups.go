package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdir/internal/client/directory"
	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/logging"
)

// GroupService defines the group operations of the console. Groups are
// addressed by exact display name; members and owners by user sign-in name.
type GroupService interface {
	GetByName(ctx context.Context, name string) (models.Option[models.Group], error)
	GetByObjectID(ctx context.Context, id string) (models.Option[models.Group], error)

	// List returns at least limit groups, or all of them when fewer exist.
	List(ctx context.Context, limit int) ([]models.Group, error)
	ListByName(ctx context.Context, prefix string) ([]models.Group, error)

	// Create fails with ErrAlreadyExists, without creating anything, when a
	// group with the same display name exists.
	Create(ctx context.Context, g models.NewGroup) (string, error)
	Delete(ctx context.Context, name string) (bool, error)

	// Members and Owners are absent when the group does not resolve and
	// present, possibly empty, otherwise.
	Members(ctx context.Context, name string) (models.Option[[]models.Member], error)
	Owners(ctx context.Context, name string) (models.Option[[]models.Member], error)
	MembersByID(ctx context.Context, groupID string) ([]models.Member, error)
	OwnersByID(ctx context.Context, groupID string) ([]models.Member, error)

	AddMember(ctx context.Context, groupName, userName string) (bool, error)
	RemoveMember(ctx context.Context, groupName, userName string) (bool, error)
	AddOwner(ctx context.Context, groupName, userName string) (bool, error)
	RemoveOwner(ctx context.Context, groupName, userName string) (bool, error)
}

type groupService struct {
	client   directory.Client
	users    UserService
	resolver *Resolver
	audit    auditor
	logger   logging.Logger
}

// NewGroupService returns a GroupService. users resolves sign-in names for
// membership changes.
func NewGroupService(client directory.Client, users UserService, resolver *Resolver, rec journal.Recorder, logger logging.Logger) GroupService {
	if logger == nil {
		logger = logging.Discard()
	}
	if resolver == nil {
		resolver = NewResolver(1, logger)
	}
	return &groupService{
		client:   client,
		users:    users,
		resolver: resolver,
		audit:    newAuditor(rec, logger),
		logger:   logger,
	}
}

func (s *groupService) GetByName(ctx context.Context, name string) (models.Option[models.Group], error) {
	if strings.TrimSpace(name) == "" {
		return models.None[models.Group](), ErrInvalidInput
	}
	page, err := s.client.Groups(ctx, directory.Query{Filter: directory.DisplayNameEquals(name), Top: 1}, "")
	if err != nil {
		return models.None[models.Group](), err
	}
	if len(page.Items) == 0 {
		return models.None[models.Group](), nil
	}
	return models.Some(models.GroupFromRecord(page.Items[0])), nil
}

func (s *groupService) GetByObjectID(ctx context.Context, id string) (models.Option[models.Group], error) {
	if strings.TrimSpace(id) == "" {
		return models.None[models.Group](), ErrInvalidInput
	}
	rec, err := s.client.Group(ctx, id)
	if errors.Is(err, directory.ErrNotFound) {
		return models.None[models.Group](), nil
	}
	if err != nil {
		return models.None[models.Group](), err
	}
	return models.Some(models.GroupFromRecord(rec)), nil
}

func (s *groupService) List(ctx context.Context, limit int) ([]models.Group, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", ErrInvalidInput)
	}
	return s.list(ctx, directory.Query{Top: min(limit, maxPageSize)}, limit)
}

func (s *groupService) ListByName(ctx context.Context, prefix string) ([]models.Group, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrInvalidInput
	}
	return s.list(ctx, directory.Query{Filter: directory.DisplayNameStartsWith(prefix)}, 0)
}

func (s *groupService) list(ctx context.Context, q directory.Query, limit int) ([]models.Group, error) {
	records, err := FetchAll(ctx, func(ctx context.Context, cursor string) (models.Page[models.GroupRecord], error) {
		return s.client.Groups(ctx, q, cursor)
	}, limit)
	if err != nil {
		return nil, err
	}

	groups := make([]models.Group, len(records))
	for i, r := range records {
		groups[i] = models.GroupFromRecord(r)
	}
	return groups, nil
}

func (s *groupService) Create(ctx context.Context, g models.NewGroup) (id string, err error) {
	defer func() { s.audit.record(ctx, OpCreateGroup, g.DisplayName, "", true, err) }()

	if strings.TrimSpace(g.DisplayName) == "" {
		return "", ErrInvalidInput
	}
	if g.MailNickname == "" {
		g.MailNickname = strings.Join(strings.Fields(g.DisplayName), "")
	}

	existing, err := s.GetByName(ctx, g.DisplayName)
	if err != nil {
		return "", err
	}
	if existing.IsPresent() {
		return "", fmt.Errorf("%w: group %q", ErrAlreadyExists, g.DisplayName)
	}

	id, err = s.client.CreateGroup(ctx, g)
	if errors.Is(err, directory.ErrConflict) {
		return "", fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "group created", "group", g.DisplayName, "id", id)
	return id, nil
}

func (s *groupService) Delete(ctx context.Context, name string) (ok bool, err error) {
	defer func() { s.audit.record(ctx, OpDeleteGroup, name, "", ok, err) }()

	group, err := s.GetByName(ctx, name)
	if err != nil {
		return false, err
	}
	g, found := group.Get()
	if !found {
		return false, nil
	}
	if err := s.client.DeleteGroup(ctx, g.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *groupService) Members(ctx context.Context, name string) (models.Option[[]models.Member], error) {
	return s.relation(ctx, name, s.MembersByID)
}

func (s *groupService) Owners(ctx context.Context, name string) (models.Option[[]models.Member], error) {
	return s.relation(ctx, name, s.OwnersByID)
}

func (s *groupService) relation(ctx context.Context, name string,
	byID func(context.Context, string) ([]models.Member, error)) (models.Option[[]models.Member], error) {

	group, err := s.GetByName(ctx, name)
	if err != nil {
		return models.None[[]models.Member](), err
	}
	g, ok := group.Get()
	if !ok {
		return models.None[[]models.Member](), nil
	}

	members, err := byID(ctx, g.ID)
	if err != nil {
		return models.None[[]models.Member](), err
	}
	return models.Some(members), nil
}

func (s *groupService) MembersByID(ctx context.Context, groupID string) ([]models.Member, error) {
	return s.resolveUsers(ctx, func(ctx context.Context, cursor string) (models.Page[models.DirectoryObject], error) {
		return s.client.GroupMembers(ctx, groupID, cursor)
	})
}

func (s *groupService) OwnersByID(ctx context.Context, groupID string) ([]models.Member, error) {
	return s.resolveUsers(ctx, func(ctx context.Context, cursor string) (models.Page[models.DirectoryObject], error) {
		return s.client.GroupOwners(ctx, groupID, cursor)
	})
}

func (s *groupService) resolveUsers(ctx context.Context, fetch PageFunc[models.DirectoryObject]) ([]models.Member, error) {
	return Resolve(ctx, s.resolver, fetch, func(ctx context.Context, id string) (models.User, error) {
		rec, err := s.client.User(ctx, id)
		if err != nil {
			return models.User{}, err
		}
		return models.UserFromRecord(rec), nil
	})
}

func (s *groupService) AddMember(ctx context.Context, groupName, userName string) (bool, error) {
	return s.link(ctx, OpAddMember, groupName, userName, s.client.AddMember)
}

func (s *groupService) RemoveMember(ctx context.Context, groupName, userName string) (bool, error) {
	return s.link(ctx, OpRemoveMember, groupName, userName, s.client.RemoveMember)
}

func (s *groupService) AddOwner(ctx context.Context, groupName, userName string) (bool, error) {
	return s.link(ctx, OpAddOwner, groupName, userName, s.client.AddOwner)
}

func (s *groupService) RemoveOwner(ctx context.Context, groupName, userName string) (bool, error) {
	return s.link(ctx, OpRemoveOwner, groupName, userName, s.client.RemoveOwner)
}

// link resolves both names and applies op. It reports false when either
// side does not resolve.
func (s *groupService) link(ctx context.Context, opName, groupName, userName string,
	op func(ctx context.Context, groupID, userID string) error) (ok bool, err error) {

	defer func() { s.audit.record(ctx, opName, groupName, userName, ok, err) }()

	if strings.TrimSpace(groupName) == "" || strings.TrimSpace(userName) == "" {
		return false, ErrInvalidInput
	}
	if s.users == nil {
		return false, fmt.Errorf("%w: user service is not configured", ErrPrecondition)
	}

	group, err := s.GetByName(ctx, groupName)
	if err != nil {
		return false, err
	}
	g, found := group.Get()
	if !found {
		return false, nil
	}

	user, err := s.users.GetBySignInName(ctx, userName)
	if err != nil {
		return false, err
	}
	u, found := user.Get()
	if !found {
		return false, nil
	}

	if err := op(ctx, g.ID, u.ID); err != nil {
		return false, err
	}
	return true, nil
}
