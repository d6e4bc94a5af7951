package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophdir/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credentials identify the application to the token authority.
type Credentials struct {
	AuthorityHost string
	Domain        string
	ClientID      string
	ClientSecret  string

	// Resource is the API the token is requested for, e.g.
	// https://graph.microsoft.com. The scope becomes Resource + "/.default".
	Resource string
}

// TokenURL returns the v2 token endpoint for the credentials' domain.
func (c Credentials) TokenURL() string {
	return strings.TrimRight(c.AuthorityHost, "/") + "/" + url.PathEscape(c.Domain) + "/oauth2/v2.0/token"
}

// NewTokenSource returns a caching client-credentials token source. When
// httpClient is not nil it is used for token requests, so proxy and timeout
// settings apply to them as well.
func NewTokenSource(ctx context.Context, c Credentials, httpClient *http.Client, logger logging.Logger) oauth2.TokenSource {
	cc := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL(),
		Scopes:       []string{strings.TrimRight(c.Resource, "/") + "/.default"},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return oauth2.ReuseTokenSource(nil, &loggingTokenSource{
		ctx:    ctx,
		fetch:  cc.Token,
		logger: logger,
	})
}

// loggingTokenSource fetches a token and logs the tenant, application and
// expiry it carries. Claims are read without verification; the token is
// only ever presented back to the issuer's API.
type loggingTokenSource struct {
	ctx    context.Context
	fetch  func(context.Context) (*oauth2.Token, error)
	logger logging.Logger
}

func (s *loggingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.fetch(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		s.logger.Debug(s.ctx, "access token acquired", "expiry", tok.Expiry)
		return tok, nil
	}

	s.logger.Info(s.ctx, "access token acquired",
		"tenant", claims["tid"],
		"app", claims["appid"],
		"expiry", tok.Expiry,
	)
	return tok, nil
}
