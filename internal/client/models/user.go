package models

import (
	"slices"
	"time"
)

// UserRecord is a user as selected from the directory API.
type UserRecord struct {
	ID              string     `json:"id"`
	AccountEnabled  *bool      `json:"accountEnabled,omitempty"`
	CreatedDateTime *time.Time `json:"createdDateTime,omitempty"`
	CreationType    string     `json:"creationType,omitempty"`
	DeletedDateTime *time.Time `json:"deletedDateTime,omitempty"`
	DisplayName     string     `json:"displayName,omitempty"`
	GivenName       string     `json:"givenName,omitempty"`
	Surname         string     `json:"surname,omitempty"`
	StreetAddress   string     `json:"streetAddress,omitempty"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	PostalCode      string     `json:"postalCode,omitempty"`
	CompanyName     string     `json:"companyName,omitempty"`
	Department      string     `json:"department,omitempty"`
	Mail            string     `json:"mail,omitempty"`
	OtherMails      []string   `json:"otherMails,omitempty"`
	Identities      []Identity `json:"identities,omitempty"`
}

// User is the display model of a user.
type User struct {
	ID              string
	AssignedID      string
	AccountEnabled  *bool
	CreatedDateTime *time.Time
	CreationType    string
	DeletedDateTime *time.Time
	DisplayName     string
	GivenName       string
	Surname         string
	StreetAddress   string
	City            string
	State           string
	PostalCode      string
	CompanyName     string
	Department      string
	Mail            string
	OtherMails      []string
	Identities      []Identity
}

// UserFromRecord projects a directory record onto the display model.
// The record is never modified; slices and pointers are copied.
func UserFromRecord(r UserRecord) User {
	u := User{
		ID:              r.ID,
		AccountEnabled:  clonePtr(r.AccountEnabled),
		CreatedDateTime: clonePtr(r.CreatedDateTime),
		CreationType:    r.CreationType,
		DeletedDateTime: clonePtr(r.DeletedDateTime),
		DisplayName:     r.DisplayName,
		GivenName:       r.GivenName,
		Surname:         r.Surname,
		StreetAddress:   r.StreetAddress,
		City:            r.City,
		State:           r.State,
		PostalCode:      r.PostalCode,
		CompanyName:     r.CompanyName,
		Department:      r.Department,
		Mail:            r.Mail,
		OtherMails:      slices.Clone(r.OtherMails),
		Identities:      slices.Clone(r.Identities),
	}
	u.AssignedID, _ = AssignedID(r.Identities)
	return u
}

// Record maps the display model back to a directory record. AssignedID is
// derived, so it has no counterpart.
func (u User) Record() UserRecord {
	return UserRecord{
		ID:              u.ID,
		AccountEnabled:  clonePtr(u.AccountEnabled),
		CreatedDateTime: clonePtr(u.CreatedDateTime),
		CreationType:    u.CreationType,
		DeletedDateTime: clonePtr(u.DeletedDateTime),
		DisplayName:     u.DisplayName,
		GivenName:       u.GivenName,
		Surname:         u.Surname,
		StreetAddress:   u.StreetAddress,
		City:            u.City,
		State:           u.State,
		PostalCode:      u.PostalCode,
		CompanyName:     u.CompanyName,
		Department:      u.Department,
		Mail:            u.Mail,
		OtherMails:      slices.Clone(u.OtherMails),
		Identities:      slices.Clone(u.Identities),
	}
}

// NewUser carries operator input for user creation.
type NewUser struct {
	UserName      string
	Password      string
	DisplayName   string
	GivenName     string
	Surname       string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	CompanyName   string
	Department    string

	// Issuer is stamped on the userName identity. Left empty by the console;
	// the user service fills it from configuration.
	Issuer string
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
