package directory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/logging"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"golang.org/x/oauth2"
)

var (
	userFields = []string{
		"id", "identities", "accountEnabled", "createdDateTime", "creationType", "deletedDateTime",
		"displayName", "givenName", "surname", "streetAddress", "city", "state", "postalCode",
		"companyName", "department", "mail", "otherMails",
	}
	groupFields     = []string{"id", "securityEnabled", "createdDateTime", "displayName", "description", "mailNickname"}
	referenceFields = []string{"id"}
)

// passwordPolicies is applied to every password the console sets.
const passwordPolicies = "DisablePasswordExpiration,DisableStrongPassword"

// Options configure a GraphClient.
type Options struct {
	// BaseURL is the versioned API root, e.g. https://graph.microsoft.com/v1.0.
	BaseURL string
	Timeout time.Duration
	Proxy   *url.URL

	// TokenSource authenticates requests. Nil sends requests without a
	// bearer token.
	TokenSource oauth2.TokenSource
	Logger      logging.Logger
}

// GraphClient implements Client over HTTP. It is safe for concurrent use.
type GraphClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*GraphClient)(nil)

// NewHTTPClient returns a plain HTTP client honouring timeout and proxy. It
// is also used for token requests.
func NewHTTPClient(timeout time.Duration, proxy *url.URL) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != nil {
		tr.Proxy = http.ProxyURL(proxy)
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func NewGraphClient(opts Options) *GraphClient {
	hc := NewHTTPClient(opts.Timeout, opts.Proxy)
	if opts.TokenSource != nil {
		hc.Transport = &oauth2.Transport{Source: opts.TokenSource, Base: hc.Transport}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &GraphClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

type listResponse[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

func (c *GraphClient) Users(ctx context.Context, q Query, cursor string) (models.Page[models.UserRecord], error) {
	return listPage[models.UserRecord](ctx, c, "/users", q, userFields, cursor)
}

func (c *GraphClient) User(ctx context.Context, id string) (models.UserRecord, error) {
	var u models.UserRecord
	err := c.do(ctx, http.MethodGet, c.entityURL("/users/", id, userFields), nil, &u)
	return u, err
}

func (c *GraphClient) Groups(ctx context.Context, q Query, cursor string) (models.Page[models.GroupRecord], error) {
	return listPage[models.GroupRecord](ctx, c, "/groups", q, groupFields, cursor)
}

func (c *GraphClient) Group(ctx context.Context, id string) (models.GroupRecord, error) {
	var g models.GroupRecord
	err := c.do(ctx, http.MethodGet, c.entityURL("/groups/", id, groupFields), nil, &g)
	return g, err
}

func (c *GraphClient) GroupMembers(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error) {
	return listPage[models.DirectoryObject](ctx, c, "/groups/"+url.PathEscape(groupID)+"/members", Query{}, referenceFields, cursor)
}

func (c *GraphClient) GroupOwners(ctx context.Context, groupID, cursor string) (models.Page[models.DirectoryObject], error) {
	return listPage[models.DirectoryObject](ctx, c, "/groups/"+url.PathEscape(groupID)+"/owners", Query{}, referenceFields, cursor)
}

func (c *GraphClient) MemberOf(ctx context.Context, userID, cursor string) (models.Page[models.DirectoryObject], error) {
	return listPage[models.DirectoryObject](ctx, c, "/users/"+url.PathEscape(userID)+"/memberOf", Query{}, referenceFields, cursor)
}

type passwordProfile struct {
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn"`
	Password                      string `json:"password"`
}

type createUserRequest struct {
	AccountEnabled   bool              `json:"accountEnabled"`
	DisplayName      string            `json:"displayName"`
	GivenName        string            `json:"givenName,omitempty"`
	Surname          string            `json:"surname,omitempty"`
	StreetAddress    string            `json:"streetAddress,omitempty"`
	City             string            `json:"city,omitempty"`
	State            string            `json:"state,omitempty"`
	PostalCode       string            `json:"postalCode,omitempty"`
	CompanyName      string            `json:"companyName,omitempty"`
	Department       string            `json:"department,omitempty"`
	Identities       []models.Identity `json:"identities"`
	PasswordPolicies string            `json:"passwordPolicies"`
	PasswordProfile  passwordProfile   `json:"passwordProfile"`
}

type created struct {
	ID string `json:"id"`
}

// CreateUser creates an enabled local account whose only sign-in identity is
// a userName identity issued by u.Issuer.
func (c *GraphClient) CreateUser(ctx context.Context, u models.NewUser) (string, error) {
	req := createUserRequest{
		AccountEnabled: true,
		DisplayName:    u.DisplayName,
		GivenName:      u.GivenName,
		Surname:        u.Surname,
		StreetAddress:  u.StreetAddress,
		City:           u.City,
		State:          u.State,
		PostalCode:     u.PostalCode,
		CompanyName:    u.CompanyName,
		Department:     u.Department,
		Identities: []models.Identity{{
			SignInType:       models.SignInTypeUserName,
			Issuer:           u.Issuer,
			IssuerAssignedID: u.UserName,
		}},
		PasswordPolicies: passwordPolicies,
		PasswordProfile:  passwordProfile{Password: u.Password},
	}

	var out created
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/users", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *GraphClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/users/"+url.PathEscape(id), nil, nil)
}

func (c *GraphClient) SetPassword(ctx context.Context, id, password string) error {
	req := struct {
		PasswordPolicies string          `json:"passwordPolicies"`
		PasswordProfile  passwordProfile `json:"passwordProfile"`
	}{
		PasswordPolicies: passwordPolicies,
		PasswordProfile:  passwordProfile{Password: password},
	}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/users/"+url.PathEscape(id), req, nil)
}

type createGroupRequest struct {
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description,omitempty"`
	MailNickname    string   `json:"mailNickname"`
	MailEnabled     bool     `json:"mailEnabled"`
	SecurityEnabled bool     `json:"securityEnabled"`
	GroupTypes      []string `json:"groupTypes"`
}

// CreateGroup creates a mail-enabled unified group.
func (c *GraphClient) CreateGroup(ctx context.Context, g models.NewGroup) (string, error) {
	req := createGroupRequest{
		DisplayName:  g.DisplayName,
		Description:  g.Description,
		MailNickname: g.MailNickname,
		MailEnabled:  true,
		GroupTypes:   []string{"Unified"},
	}

	var out created
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/groups", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *GraphClient) DeleteGroup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/groups/"+url.PathEscape(id), nil, nil)
}

func (c *GraphClient) AddMember(ctx context.Context, groupID, userID string) error {
	return c.addReference(ctx, groupID, "members", userID)
}

func (c *GraphClient) RemoveMember(ctx context.Context, groupID, userID string) error {
	return c.removeReference(ctx, groupID, "members", userID)
}

func (c *GraphClient) AddOwner(ctx context.Context, groupID, userID string) error {
	return c.addReference(ctx, groupID, "owners", userID)
}

func (c *GraphClient) RemoveOwner(ctx context.Context, groupID, userID string) error {
	return c.removeReference(ctx, groupID, "owners", userID)
}

func (c *GraphClient) addReference(ctx context.Context, groupID, relation, objectID string) error {
	req := map[string]string{"@odata.id": c.baseURL + "/directoryObjects/" + url.PathEscape(objectID)}
	u := c.baseURL + "/groups/" + url.PathEscape(groupID) + "/" + relation + "/$ref"
	return c.do(ctx, http.MethodPost, u, req, nil)
}

func (c *GraphClient) removeReference(ctx context.Context, groupID, relation, objectID string) error {
	u := c.baseURL + "/groups/" + url.PathEscape(groupID) + "/" + relation + "/" + url.PathEscape(objectID) + "/$ref"
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

func (c *GraphClient) entityURL(collection, id string, fields []string) string {
	return c.baseURL + collection + url.PathEscape(id) + "?" + Query{}.values(fields).Encode()
}

func listPage[T any](ctx context.Context, c *GraphClient, path string, q Query, fields []string, cursor string) (models.Page[T], error) {
	u := cursor
	if u == "" {
		u = c.baseURL + path + "?" + q.values(fields).Encode()
	} else if !strings.HasPrefix(cursor, c.baseURL+"/") {
		return models.Page[T]{}, fmt.Errorf("directory: next link %q is outside %s", cursor, c.baseURL)
	}

	var resp listResponse[T]
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return models.Page[T]{}, err
	}
	return models.Page[T]{Items: resp.Value, Next: resp.NextLink}, nil
}

// do sends one request. in is encoded as the JSON body when not nil; a 2xx
// body is decoded into out when out is not nil.
func (c *GraphClient) do(ctx context.Context, method, rawURL string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("directory: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("client-request-id", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "directory request failed", "method", method, "url", rawURL,
			"client_request_id", requestID, "error", err)
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "directory request", "method", method, "url", rawURL, "status", resp.StatusCode,
		"client_request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServiceError(resp.StatusCode, data, requestID)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("directory: decode %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
