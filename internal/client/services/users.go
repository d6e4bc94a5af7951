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

// maxPageSize is the largest $top the directory accepts.
const maxPageSize = 999

// UserService defines the user operations of the console.
//
// Users are addressed by sign-in name: the issuer-assigned id of a userName
// identity issued by the configured tenant.
type UserService interface {
	GetBySignInName(ctx context.Context, signInName string) (models.Option[models.User], error)
	GetByDisplayName(ctx context.Context, displayName string) (models.Option[models.User], error)
	GetByObjectID(ctx context.Context, id string) (models.Option[models.User], error)

	// List returns at least limit users, or all of them when fewer exist.
	List(ctx context.Context, limit int) ([]models.User, error)
	ListByName(ctx context.Context, prefix string) ([]models.User, error)

	// GroupMembership is absent when the user does not resolve.
	GroupMembership(ctx context.Context, signInName string) (models.Option[[]models.GroupRef], error)
	GroupMembershipByID(ctx context.Context, userID string) ([]models.GroupRef, error)

	Create(ctx context.Context, u models.NewUser) (string, error)
	Delete(ctx context.Context, signInName string) (bool, error)
	SetPassword(ctx context.Context, signInName, password string) (bool, error)

	UserName(u models.User) (string, bool)
}

type userService struct {
	client   directory.Client
	tenant   string
	resolver *Resolver
	audit    auditor
	logger   logging.Logger
}

// NewUserService returns a UserService. tenant is the issuer of sign-in
// identities. rec may be nil to disable journaling.
func NewUserService(client directory.Client, tenant string, resolver *Resolver, rec journal.Recorder, logger logging.Logger) UserService {
	if logger == nil {
		logger = logging.Discard()
	}
	if resolver == nil {
		resolver = NewResolver(1, logger)
	}
	return &userService{
		client:   client,
		tenant:   tenant,
		resolver: resolver,
		audit:    newAuditor(rec, logger),
		logger:   logger,
	}
}

func (s *userService) GetBySignInName(ctx context.Context, signInName string) (models.Option[models.User], error) {
	if strings.TrimSpace(signInName) == "" {
		return models.None[models.User](), ErrInvalidInput
	}
	return s.first(ctx, directory.SignInName(signInName, s.tenant))
}

func (s *userService) GetByDisplayName(ctx context.Context, displayName string) (models.Option[models.User], error) {
	if strings.TrimSpace(displayName) == "" {
		return models.None[models.User](), ErrInvalidInput
	}
	return s.first(ctx, directory.DisplayNameEquals(displayName))
}

func (s *userService) GetByObjectID(ctx context.Context, id string) (models.Option[models.User], error) {
	if strings.TrimSpace(id) == "" {
		return models.None[models.User](), ErrInvalidInput
	}
	rec, err := s.client.User(ctx, id)
	if errors.Is(err, directory.ErrNotFound) {
		return models.None[models.User](), nil
	}
	if err != nil {
		return models.None[models.User](), err
	}
	return models.Some(models.UserFromRecord(rec)), nil
}

func (s *userService) first(ctx context.Context, filter string) (models.Option[models.User], error) {
	page, err := s.client.Users(ctx, directory.Query{Filter: filter, Top: 1}, "")
	if err != nil {
		return models.None[models.User](), err
	}
	if len(page.Items) == 0 {
		return models.None[models.User](), nil
	}
	return models.Some(models.UserFromRecord(page.Items[0])), nil
}

func (s *userService) List(ctx context.Context, limit int) ([]models.User, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", ErrInvalidInput)
	}
	q := directory.Query{Top: min(limit, maxPageSize)}
	return s.list(ctx, q, limit)
}

func (s *userService) ListByName(ctx context.Context, prefix string) ([]models.User, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrInvalidInput
	}
	return s.list(ctx, directory.Query{Filter: directory.DisplayNameStartsWith(prefix)}, 0)
}

func (s *userService) list(ctx context.Context, q directory.Query, limit int) ([]models.User, error) {
	records, err := FetchAll(ctx, func(ctx context.Context, cursor string) (models.Page[models.UserRecord], error) {
		return s.client.Users(ctx, q, cursor)
	}, limit)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(records))
	for i, r := range records {
		users[i] = models.UserFromRecord(r)
	}
	return users, nil
}

func (s *userService) GroupMembership(ctx context.Context, signInName string) (models.Option[[]models.GroupRef], error) {
	user, err := s.GetBySignInName(ctx, signInName)
	if err != nil {
		return models.None[[]models.GroupRef](), err
	}
	u, ok := user.Get()
	if !ok {
		return models.None[[]models.GroupRef](), nil
	}

	refs, err := s.GroupMembershipByID(ctx, u.ID)
	if err != nil {
		return models.None[[]models.GroupRef](), err
	}
	return models.Some(refs), nil
}

func (s *userService) GroupMembershipByID(ctx context.Context, userID string) ([]models.GroupRef, error) {
	fetch := func(ctx context.Context, cursor string) (models.Page[models.DirectoryObject], error) {
		return s.client.MemberOf(ctx, userID, cursor)
	}
	return Resolve(ctx, s.resolver, fetch, func(ctx context.Context, id string) (models.Group, error) {
		rec, err := s.client.Group(ctx, id)
		if err != nil {
			return models.Group{}, err
		}
		return models.GroupFromRecord(rec), nil
	})
}

func (s *userService) Create(ctx context.Context, u models.NewUser) (id string, err error) {
	defer func() { s.audit.record(ctx, OpCreateUser, u.UserName, "", true, err) }()

	if strings.TrimSpace(u.UserName) == "" || u.Password == "" || strings.TrimSpace(u.DisplayName) == "" {
		return "", ErrInvalidInput
	}
	if u.Issuer == "" {
		u.Issuer = s.tenant
	}

	id, err = s.client.CreateUser(ctx, u)
	if errors.Is(err, directory.ErrConflict) {
		return "", fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "user created", "user", u.UserName, "id", id)
	return id, nil
}

func (s *userService) Delete(ctx context.Context, signInName string) (ok bool, err error) {
	defer func() { s.audit.record(ctx, OpDeleteUser, signInName, "", ok, err) }()

	id, found, err := s.objectID(ctx, signInName)
	if err != nil || !found {
		return false, err
	}
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) SetPassword(ctx context.Context, signInName, password string) (ok bool, err error) {
	defer func() { s.audit.record(ctx, OpSetPassword, signInName, "", ok, err) }()

	if password == "" {
		return false, ErrInvalidInput
	}
	id, found, err := s.objectID(ctx, signInName)
	if err != nil || !found {
		return false, err
	}
	if err := s.client.SetPassword(ctx, id, password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) UserName(u models.User) (string, bool) {
	return models.AssignedID(u.Identities)
}

func (s *userService) objectID(ctx context.Context, signInName string) (string, bool, error) {
	user, err := s.GetBySignInName(ctx, signInName)
	if err != nil {
		return "", false, err
	}
	u, ok := user.Get()
	return u.ID, ok, nil
}
