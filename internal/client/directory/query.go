package directory

import (
	"net/url"
	"strconv"
	"strings"
)

// Query describes the first request of a listing.
type Query struct {
	Filter string
	Top    int
	Select []string
}

func (q Query) values(defaultSelect []string) url.Values {
	v := url.Values{}
	if q.Filter != "" {
		v.Set("$filter", q.Filter)
	}
	if q.Top > 0 {
		v.Set("$top", strconv.Itoa(q.Top))
	}
	sel := q.Select
	if len(sel) == 0 {
		sel = defaultSelect
	}
	if len(sel) > 0 {
		v.Set("$select", strings.Join(sel, ","))
	}
	return v
}

func DisplayNameEquals(name string) string {
	return "displayName eq " + quote(name)
}

func DisplayNameStartsWith(prefix string) string {
	return "startswith(displayName," + quote(prefix) + ")"
}

// SignInName matches users carrying a sign-in identity with the given
// issuer-assigned id and issuer.
func SignInName(name, issuer string) string {
	return "identities/any(c:c/issuerAssignedId eq " + quote(name) +
		" and c/issuer eq " + quote(issuer) + ")"
}

// quote renders s as an OData string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
