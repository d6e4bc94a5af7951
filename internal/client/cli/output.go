package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/client/directory"
	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/client/services"
)

const timeLayout = "2006-01-02 15:04:05 -07:00"

var groupRule = strings.Repeat("-", 80)

func fmtBool(b *bool) string {
	if b == nil {
		return ""
	}
	return fmt.Sprint(*b)
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func userLine(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "- %-20s = %v\n", label, v)
}

func writeUser(w io.Writer, u models.User) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[ USER ]")
	userLine(w, "object ID", u.ID)
	userLine(w, "assigned ID", u.AssignedID)
	userLine(w, "account enabled", fmtBool(u.AccountEnabled))
	userLine(w, "created date time", fmtTime(u.CreatedDateTime))
	userLine(w, "creation type", u.CreationType)
	userLine(w, "deleted date time", fmtTime(u.DeletedDateTime))
	userLine(w, "display name", u.DisplayName)
	userLine(w, "given name", u.GivenName)
	userLine(w, "surname", u.Surname)
	userLine(w, "street address", u.StreetAddress)
	userLine(w, "city", u.City)
	userLine(w, "state", u.State)
	userLine(w, "postal code", u.PostalCode)
	userLine(w, "company name", u.CompanyName)
	userLine(w, "department", u.Department)
	if u.Mail != "" {
		userLine(w, "mail", u.Mail)
	}
	for _, m := range u.OtherMails {
		userLine(w, "other mail", m)
	}

	fmt.Fprintf(w, "%23s= identites count         > %d\n", "", len(u.Identities))
	for _, id := range u.Identities {
		fmt.Fprintf(w, "- %-20s = signin type             > %s\n", "identity", id.SignInType)
		fmt.Fprintf(w, "- %-20s = issuer                  > %s\n", "", id.Issuer)
		fmt.Fprintf(w, "- %-20s = issuer assigned ID      > %s\n", "", id.IssuerAssignedID)
	}
}

// writeMemberships prints a user's resolved group memberships. Unresolved
// and failed lookups keep their object id so the operator can follow up.
func writeMemberships(w io.Writer, refs []models.GroupRef) {
	fmt.Fprintf(w, "%23s= group memberships count > %d\n", "", len(refs))
	for _, r := range refs {
		fmt.Fprintf(w, "- %-20s = object ID               > %s\n", "group membership", r.ID)
		fmt.Fprintf(w, "- %-20s = display name            > %s\n", "", refName(r.Value, r.Err, func(g models.Group) string {
			return g.DisplayName
		}))
	}
}

func refName[T any](v models.Option[T], err error, name func(T) string) string {
	if err != nil {
		return fmt.Sprintf("(lookup failed: %v)", err)
	}
	if x, ok := v.Get(); ok {
		return name(x)
	}
	return "(unresolved)"
}

func writeUsers(w io.Writer, users []models.User) {
	for _, u := range users {
		writeUser(w, u)
	}
	fmt.Fprintf(w, "\ntotal records: %d\n", len(users))
}

func groupLine(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "%-20s = %v\n", label, v)
}

func writeGroup(w io.Writer, g models.Group) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "GROUP")
	fmt.Fprintln(w, groupRule)
	groupLine(w, "OBJECT ID", g.ID)
	groupLine(w, "SECURITY ENABLED", fmtBool(g.SecurityEnabled))
	groupLine(w, "CREATED DATE TIME", fmtTime(g.CreatedDateTime))
	groupLine(w, "DISPLAY NAME", g.DisplayName)
	groupLine(w, "DESCRIPTION", g.Description)
	if g.MailNickname != "" {
		groupLine(w, "MAIL NICK NAME", g.MailNickname)
	}
}

// writeMembers prints resolved members or owners; role is MEMBER or OWNER.
func writeMembers(w io.Writer, role string, members []models.Member) {
	fmt.Fprintln(w)
	groupLine(w, "GROUP "+role+"S", fmt.Sprintf("%d (COUNT)", len(members)))
	lead := role + " " + strings.Repeat(".", max(1, 20-len(role)-1))
	for _, m := range members {
		fmt.Fprintf(w, "%-20s = USER OBJECT ID     = %s\n", lead, m.ID)
		fmt.Fprintf(w, "%-20s = USER DISPLAY NAME  = %s\n", "", refName(m.Value, m.Err, func(u models.User) string {
			return u.DisplayName
		}))
	}
}

func writeGroups(w io.Writer, groups []models.Group) {
	for _, g := range groups {
		writeGroup(w, g)
	}
	fmt.Fprintf(w, "\nTOTAL RECORDS: %d\n", len(groups))
}

func writeJournal(w io.Writer, entries []journal.Entry) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-25s %-14s %-10s %-30s %s\n", "WHEN", "OPERATION", "OUTCOME", "TARGET", "SUBJECT")
	fmt.Fprintln(w, rule)
	for _, e := range entries {
		fmt.Fprintf(w, "%-25s %-14s %-10s %-30s %s\n",
			e.CreatedAt.Local().Format(timeLayout), e.Operation, e.Outcome, e.Target, e.Subject)
		if e.Detail != "" {
			fmt.Fprintf(w, "%25s -> %s\n", "", e.Detail)
		}
	}
	fmt.Fprintf(w, "\nTOTAL RECORDS: %d\n", len(entries))
}

// writeError renders a command failure. Directory errors show the remote
// status and correlation ids; anything else shows the wrapped chain.
func writeError(w io.Writer, err error) {
	var se *directory.ServiceError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fmt.Fprintln(w, "\nERROR-> invalid input")
	case errors.Is(err, services.ErrPrecondition):
		fmt.Fprintf(w, "\nERROR-> %v\n", err)
	case errors.As(err, &se):
		fmt.Fprintln(w)
		fmt.Fprintf(w, "status code-> %d\n", se.StatusCode)
		fmt.Fprintf(w, "error code-> %s\n", se.Code)
		fmt.Fprintf(w, "error message-> %s\n", se.Message)
		fmt.Fprintf(w, "error inner exception-> %s\n", se.InnerError)
		if se.RequestID != "" {
			fmt.Fprintf(w, "request id-> %s\n", se.RequestID)
		}
		if se.ClientRequestID != "" {
			fmt.Fprintf(w, "client request id-> %s\n", se.ClientRequestID)
		}
	default:
		fmt.Fprintf(w, "\nEXCEPTION-> %v\n", err)
		if inner := errors.Unwrap(err); inner != nil {
			fmt.Fprintf(w, "INNER EXCEPTION-> %v\n", inner)
		}
	}
}
