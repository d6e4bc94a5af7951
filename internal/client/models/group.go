package models

import "time"

// GroupRecord is a group as selected from the directory API.
type GroupRecord struct {
	ID              string     `json:"id"`
	SecurityEnabled *bool      `json:"securityEnabled,omitempty"`
	CreatedDateTime *time.Time `json:"createdDateTime,omitempty"`
	DisplayName     string     `json:"displayName,omitempty"`
	Description     string     `json:"description,omitempty"`
	MailNickname    string     `json:"mailNickname,omitempty"`
}

// Group is the display model of a group.
type Group struct {
	ID              string
	SecurityEnabled *bool
	CreatedDateTime *time.Time
	DisplayName     string
	Description     string
	MailNickname    string
}

func GroupFromRecord(r GroupRecord) Group {
	return Group{
		ID:              r.ID,
		SecurityEnabled: clonePtr(r.SecurityEnabled),
		CreatedDateTime: clonePtr(r.CreatedDateTime),
		DisplayName:     r.DisplayName,
		Description:     r.Description,
		MailNickname:    r.MailNickname,
	}
}

func (g Group) Record() GroupRecord {
	return GroupRecord{
		ID:              g.ID,
		SecurityEnabled: clonePtr(g.SecurityEnabled),
		CreatedDateTime: clonePtr(g.CreatedDateTime),
		DisplayName:     g.DisplayName,
		Description:     g.Description,
		MailNickname:    g.MailNickname,
	}
}

// NewGroup carries operator input for group creation.
type NewGroup struct {
	DisplayName  string
	Description  string
	MailNickname string
}

// DirectoryObject is a bare reference returned by relationship listings
// (members, owners, memberOf).
type DirectoryObject struct {
	ODataType   string `json:"@odata.type,omitempty"`
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}
