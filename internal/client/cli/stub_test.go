package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/logging"
)

// stubUsers is a services.UserService whose behaviour is set per test.
// Unset funcs return zero values.
type stubUsers struct {
	bySignIn      func(name string) (models.Option[models.User], error)
	byDisplayName func(name string) (models.Option[models.User], error)
	byID          func(id string) (models.Option[models.User], error)
	list          func(limit int) ([]models.User, error)
	listByName    func(prefix string) ([]models.User, error)
	memberships   func(userID string) ([]models.GroupRef, error)
	create        func(u models.NewUser) (string, error)
	del           func(name string) (bool, error)
	setPassword   func(name, pw string) (bool, error)

	calls []string
}

func (s *stubUsers) GetBySignInName(_ context.Context, name string) (models.Option[models.User], error) {
	s.calls = append(s.calls, "GetBySignInName")
	if s.bySignIn == nil {
		return models.None[models.User](), nil
	}
	return s.bySignIn(name)
}

func (s *stubUsers) GetByDisplayName(_ context.Context, name string) (models.Option[models.User], error) {
	s.calls = append(s.calls, "GetByDisplayName")
	if s.byDisplayName == nil {
		return models.None[models.User](), nil
	}
	return s.byDisplayName(name)
}

func (s *stubUsers) GetByObjectID(_ context.Context, id string) (models.Option[models.User], error) {
	s.calls = append(s.calls, "GetByObjectID")
	if s.byID == nil {
		return models.None[models.User](), nil
	}
	return s.byID(id)
}

func (s *stubUsers) List(_ context.Context, limit int) ([]models.User, error) {
	s.calls = append(s.calls, "List")
	if s.list == nil {
		return []models.User{}, nil
	}
	return s.list(limit)
}

func (s *stubUsers) ListByName(_ context.Context, prefix string) ([]models.User, error) {
	s.calls = append(s.calls, "ListByName")
	if s.listByName == nil {
		return []models.User{}, nil
	}
	return s.listByName(prefix)
}

func (s *stubUsers) GroupMembership(context.Context, string) (models.Option[[]models.GroupRef], error) {
	s.calls = append(s.calls, "GroupMembership")
	return models.None[[]models.GroupRef](), nil
}

func (s *stubUsers) GroupMembershipByID(_ context.Context, id string) ([]models.GroupRef, error) {
	s.calls = append(s.calls, "GroupMembershipByID")
	if s.memberships == nil {
		return []models.GroupRef{}, nil
	}
	return s.memberships(id)
}

func (s *stubUsers) Create(_ context.Context, u models.NewUser) (string, error) {
	s.calls = append(s.calls, "Create")
	if s.create == nil {
		return "", nil
	}
	return s.create(u)
}

func (s *stubUsers) Delete(_ context.Context, name string) (bool, error) {
	s.calls = append(s.calls, "Delete")
	if s.del == nil {
		return false, nil
	}
	return s.del(name)
}

func (s *stubUsers) SetPassword(_ context.Context, name, pw string) (bool, error) {
	s.calls = append(s.calls, "SetPassword")
	if s.setPassword == nil {
		return false, nil
	}
	return s.setPassword(name, pw)
}

func (s *stubUsers) UserName(u models.User) (string, bool) {
	return models.AssignedID(u.Identities)
}

// stubGroups is a services.GroupService for handler tests.
type stubGroups struct {
	byName     func(name string) (models.Option[models.Group], error)
	byID       func(id string) (models.Option[models.Group], error)
	list       func(limit int) ([]models.Group, error)
	listByName func(prefix string) ([]models.Group, error)
	create     func(g models.NewGroup) (string, error)
	del        func(name string) (bool, error)
	members    func(groupID string) ([]models.Member, error)
	owners     func(groupID string) ([]models.Member, error)
	link       func(op, group, user string) (bool, error)

	calls []string
}

func (s *stubGroups) GetByName(_ context.Context, name string) (models.Option[models.Group], error) {
	s.calls = append(s.calls, "GetByName")
	if s.byName == nil {
		return models.None[models.Group](), nil
	}
	return s.byName(name)
}

func (s *stubGroups) GetByObjectID(_ context.Context, id string) (models.Option[models.Group], error) {
	s.calls = append(s.calls, "GetByObjectID")
	if s.byID == nil {
		return models.None[models.Group](), nil
	}
	return s.byID(id)
}

func (s *stubGroups) List(_ context.Context, limit int) ([]models.Group, error) {
	s.calls = append(s.calls, "List")
	if s.list == nil {
		return []models.Group{}, nil
	}
	return s.list(limit)
}

func (s *stubGroups) ListByName(_ context.Context, prefix string) ([]models.Group, error) {
	s.calls = append(s.calls, "ListByName")
	if s.listByName == nil {
		return []models.Group{}, nil
	}
	return s.listByName(prefix)
}

func (s *stubGroups) Create(_ context.Context, g models.NewGroup) (string, error) {
	s.calls = append(s.calls, "Create")
	if s.create == nil {
		return "", nil
	}
	return s.create(g)
}

func (s *stubGroups) Delete(_ context.Context, name string) (bool, error) {
	s.calls = append(s.calls, "Delete")
	if s.del == nil {
		return false, nil
	}
	return s.del(name)
}

func (s *stubGroups) Members(context.Context, string) (models.Option[[]models.Member], error) {
	return models.None[[]models.Member](), nil
}

func (s *stubGroups) Owners(context.Context, string) (models.Option[[]models.Member], error) {
	return models.None[[]models.Member](), nil
}

func (s *stubGroups) MembersByID(_ context.Context, id string) ([]models.Member, error) {
	s.calls = append(s.calls, "MembersByID")
	if s.members == nil {
		return []models.Member{}, nil
	}
	return s.members(id)
}

func (s *stubGroups) OwnersByID(_ context.Context, id string) ([]models.Member, error) {
	s.calls = append(s.calls, "OwnersByID")
	if s.owners == nil {
		return []models.Member{}, nil
	}
	return s.owners(id)
}

func (s *stubGroups) doLink(op, group, user string) (bool, error) {
	s.calls = append(s.calls, op)
	if s.link == nil {
		return false, nil
	}
	return s.link(op, group, user)
}

func (s *stubGroups) AddMember(_ context.Context, g, u string) (bool, error) {
	return s.doLink("AddMember", g, u)
}

func (s *stubGroups) RemoveMember(_ context.Context, g, u string) (bool, error) {
	return s.doLink("RemoveMember", g, u)
}

func (s *stubGroups) AddOwner(_ context.Context, g, u string) (bool, error) {
	return s.doLink("AddOwner", g, u)
}

func (s *stubGroups) RemoveOwner(_ context.Context, g, u string) (bool, error) {
	return s.doLink("RemoveOwner", g, u)
}

type stubJournal struct {
	entries []journal.Entry
	err     error
	limit   int
}

func (s *stubJournal) Record(context.Context, journal.Entry) error { return nil }

func (s *stubJournal) Recent(_ context.Context, limit int) ([]journal.Entry, error) {
	s.limit = limit
	return s.entries, s.err
}

func (s *stubJournal) Close() error { return nil }

// newTestApp returns an App reading input and writing to the returned buffer.
// Passwords are read as plain lines.
func newTestApp(t *testing.T, input string, users *stubUsers, groups *stubGroups) (*App, *bytes.Buffer) {
	t.Helper()

	old := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = old })

	out := &bytes.Buffer{}
	a := &App{
		domain: "contoso.example",
		reader: rdr(input),
		out:    out,
		logger: logging.Discard(),
	}
	// typed nils would defeat the handlers' nil checks
	if users != nil {
		a.users = users
	}
	if groups != nil {
		a.groups = groups
	}
	return a, out
}
