package directory

import (
	"context"

	"github.com/dmitrijs2005/gophdir/internal/client/models"
)

// Client is the directory API as seen by the services layer.
//
// Single fetches return ErrNotFound when the object does not exist. Listing
// methods take an empty cursor for the first page and Page.Next afterwards.
type Client interface {
	Users(ctx context.Context, q Query, cursor string) (models.Page[models.UserRecord], error)
	User(ctx context.Context, id string) (models.UserRecord, error)
	Groups(ctx context.Context, q Query, cursor string) (models.Page[models.GroupRecord], error)
	Group(ctx context.Context, id string) (models.GroupRecord, error)

	GroupMembers(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error)
	GroupOwners(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error)
	MemberOf(ctx context.Context, userID, cursor string) (models.Page[models.DirectoryObject], error)

	CreateUser(ctx context.Context, u models.NewUser) (string, error)
	DeleteUser(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id, password string) error

	CreateGroup(ctx context.Context, g models.NewGroup) (string, error)
	DeleteGroup(ctx context.Context, id string) error

	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	AddOwner(ctx context.Context, groupID, userID string) error
	RemoveOwner(ctx context.Context, groupID, userID string) error
}
