package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/client/directory"
	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/stretchr/testify/mock"
)

const testTenant = "contoso.onmicrosoft.com"

// fakeDirectory is an in-memory directory.Client. Listings are paged by
// pageSize (or a smaller Query.Top) using "offset:size" cursors.
type fakeDirectory struct {
	mu sync.Mutex

	pageSize int
	users    []models.UserRecord
	groups   []models.GroupRecord
	members  map[string][]string
	owners   map[string][]string
	memberOf map[string][]string

	lookupErr   map[string]error
	pageErr     error
	createErr   error
	lookupDelay time.Duration

	calls   map[string]int
	queries []directory.Query
	links   []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

var _ directory.Client = (*fakeDirectory)(nil)

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		pageSize:  2,
		members:   map[string][]string{},
		owners:    map[string][]string{},
		memberOf:  map[string][]string{},
		lookupErr: map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeDirectory) addUser(id, userName, displayName string) {
	f.users = append(f.users, models.UserRecord{
		ID:          id,
		DisplayName: displayName,
		Identities: []models.Identity{
			{SignInType: "userName", Issuer: testTenant, IssuerAssignedID: userName},
		},
	})
}

func (f *fakeDirectory) addGroup(id, displayName string) {
	f.groups = append(f.groups, models.GroupRecord{ID: id, DisplayName: displayName})
}

func (f *fakeDirectory) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeDirectory) called(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func paginate[T any](items []T, defaultSize, top int, cursor string) (models.Page[T], error) {
	offset, size := 0, defaultSize
	if top > 0 && top < size {
		size = top
	}
	if cursor != "" {
		parts := strings.SplitN(cursor, ":", 2)
		o, err1 := strconv.Atoi(parts[0])
		s, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return models.Page[T]{}, fmt.Errorf("bad cursor %q", cursor)
		}
		offset, size = o, s
	}

	end := min(offset+size, len(items))
	page := models.Page[T]{Items: append([]T(nil), items[offset:end]...)}
	if end < len(items) {
		page.Next = fmt.Sprintf("%d:%d", end, size)
	}
	return page, nil
}

func matchesDisplayName(filter, displayName string) bool {
	if filter == "" || filter == directory.DisplayNameEquals(displayName) {
		return true
	}
	if p, ok := strings.CutPrefix(filter, "startswith(displayName,'"); ok {
		return strings.HasPrefix(displayName, strings.TrimSuffix(p, "')"))
	}
	return false
}

func (f *fakeDirectory) Users(ctx context.Context, q directory.Query, cursor string) (models.Page[models.UserRecord], error) {
	f.called("Users")
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.pageErr != nil && cursor != "" {
		return models.Page[models.UserRecord]{}, f.pageErr
	}

	var out []models.UserRecord
	for _, u := range f.users {
		match := matchesDisplayName(q.Filter, u.DisplayName)
		for _, id := range u.Identities {
			if q.Filter == directory.SignInName(id.IssuerAssignedID, id.Issuer) {
				match = true
			}
		}
		if match {
			out = append(out, u)
		}
	}
	return paginate(out, f.pageSize, q.Top, cursor)
}

func (f *fakeDirectory) User(ctx context.Context, id string) (models.UserRecord, error) {
	f.called("User")

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if f.lookupDelay > 0 {
		select {
		case <-time.After(f.lookupDelay):
		case <-ctx.Done():
			return models.UserRecord{}, ctx.Err()
		}
	}

	if err := f.lookupErr[id]; err != nil {
		return models.UserRecord{}, err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.UserRecord{}, &directory.ServiceError{StatusCode: 404, Code: "Request_ResourceNotFound"}
}

func (f *fakeDirectory) Groups(ctx context.Context, q directory.Query, cursor string) (models.Page[models.GroupRecord], error) {
	f.called("Groups")
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.pageErr != nil && cursor != "" {
		return models.Page[models.GroupRecord]{}, f.pageErr
	}

	var out []models.GroupRecord
	for _, g := range f.groups {
		if matchesDisplayName(q.Filter, g.DisplayName) {
			out = append(out, g)
		}
	}
	return paginate(out, f.pageSize, q.Top, cursor)
}

func (f *fakeDirectory) Group(ctx context.Context, id string) (models.GroupRecord, error) {
	f.called("Group")
	if err := f.lookupErr[id]; err != nil {
		return models.GroupRecord{}, err
	}
	for _, g := range f.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return models.GroupRecord{}, &directory.ServiceError{StatusCode: 404}
}

func refs(ids []string) []models.DirectoryObject {
	out := make([]models.DirectoryObject, len(ids))
	for i, id := range ids {
		out[i] = models.DirectoryObject{ID: id}
	}
	return out
}

func (f *fakeDirectory) GroupMembers(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error) {
	f.called("GroupMembers")
	return paginate(refs(f.members[groupID]), f.pageSize, 0, cursor)
}

func (f *fakeDirectory) GroupOwners(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error) {
	f.called("GroupOwners")
	return paginate(refs(f.owners[groupID]), f.pageSize, 0, cursor)
}

func (f *fakeDirectory) MemberOf(ctx context.Context, userID, cursor string) (models.Page[models.DirectoryObject], error) {
	f.called("MemberOf")
	return paginate(refs(f.memberOf[userID]), f.pageSize, 0, cursor)
}

func (f *fakeDirectory) CreateUser(ctx context.Context, u models.NewUser) (string, error) {
	f.called("CreateUser")
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "u-" + u.UserName
	f.users = append(f.users, models.UserRecord{ID: id, DisplayName: u.DisplayName,
		Identities: []models.Identity{{SignInType: "userName", Issuer: u.Issuer, IssuerAssignedID: u.UserName}}})
	return id, nil
}

func (f *fakeDirectory) DeleteUser(ctx context.Context, id string) error {
	f.called("DeleteUser")
	return nil
}

func (f *fakeDirectory) SetPassword(ctx context.Context, id, password string) error {
	f.called("SetPassword")
	return nil
}

func (f *fakeDirectory) CreateGroup(ctx context.Context, g models.NewGroup) (string, error) {
	f.called("CreateGroup")
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "g-" + g.MailNickname
	f.groups = append(f.groups, models.GroupRecord{ID: id, DisplayName: g.DisplayName, MailNickname: g.MailNickname})
	return id, nil
}

func (f *fakeDirectory) DeleteGroup(ctx context.Context, id string) error {
	f.called("DeleteGroup")
	return nil
}

func (f *fakeDirectory) link(op, groupID, userID string) error {
	f.called(op)
	f.mu.Lock()
	f.links = append(f.links, op+" "+groupID+" "+userID)
	f.mu.Unlock()
	return nil
}

func (f *fakeDirectory) AddMember(ctx context.Context, groupID, userID string) error {
	return f.link("AddMember", groupID, userID)
}

func (f *fakeDirectory) RemoveMember(ctx context.Context, groupID, userID string) error {
	return f.link("RemoveMember", groupID, userID)
}

func (f *fakeDirectory) AddOwner(ctx context.Context, groupID, userID string) error {
	return f.link("AddOwner", groupID, userID)
}

func (f *fakeDirectory) RemoveOwner(ctx context.Context, groupID, userID string) error {
	return f.link("RemoveOwner", groupID, userID)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, e journal.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// expectEntry registers one journal entry with the given operation and outcome.
func (m *mockRecorder) expectEntry(op string, outcome journal.Outcome) *mock.Call {
	return m.On("Record", mock.Anything, mock.MatchedBy(func(e journal.Entry) bool {
		return e.Operation == op && e.Outcome == outcome
	})).Return(nil).Once()
}
