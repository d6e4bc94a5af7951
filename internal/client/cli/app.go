package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/dmitrijs2005/gophdir/internal/client/config"
	"github.com/dmitrijs2005/gophdir/internal/client/directory"
	"github.com/dmitrijs2005/gophdir/internal/client/journal"
	"github.com/dmitrijs2005/gophdir/internal/client/services"
	"github.com/dmitrijs2005/gophdir/internal/logging"
)

// App is the directory console. It owns the services, the optional journal
// and the operator's terminal.
type App struct {
	domain  string
	users   services.UserService
	groups  services.GroupService
	journal journal.Repository
	reader  *bufio.Reader
	out     io.Writer
	logger  logging.Logger
}

var _ handlers = (*App)(nil)

// NewApp builds the directory client, services and journal from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	proxy, err := c.Proxy()
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}

	resource, err := resourceOf(c.GraphEndpoint)
	if err != nil {
		return nil, err
	}

	tokens := directory.NewTokenSource(ctx, directory.Credentials{
		AuthorityHost: c.AuthorityHost,
		Domain:        c.Domain,
		ClientID:      c.ClientID,
		ClientSecret:  c.ClientSecret,
		Resource:      resource,
	}, directory.NewHTTPClient(c.Timeout, proxy), logger)

	dc := directory.NewGraphClient(directory.Options{
		BaseURL:     c.GraphEndpoint,
		Timeout:     c.Timeout,
		Proxy:       proxy,
		TokenSource: tokens,
		Logger:      logger,
	})

	var (
		repo journal.Repository
		rec  = journal.Discard()
	)
	if c.JournalDSN != "" {
		repo, err = journal.Open(ctx, c.JournalDSN)
		if err != nil {
			return nil, err
		}
		rec = repo
	}

	tenant := c.Tenant
	if tenant == "" {
		tenant = c.Domain
	}

	resolver := services.NewResolver(c.ResolveConcurrency, logger)
	us := services.NewUserService(dc, tenant, resolver, rec, logger)
	gs := services.NewGroupService(dc, us, resolver, rec, logger)

	return &App{
		domain:  c.Domain,
		users:   us,
		groups:  gs,
		journal: repo,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		logger:  logger,
	}, nil
}

// resourceOf returns the scheme and host of the API endpoint, which is what
// the token authority expects as the resource.
func resourceOf(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("config: graph_endpoint %q is not an absolute URL", endpoint)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Run starts the menu loop and blocks until the operator exits or input ends.
func (a *App) Run(ctx context.Context) error {
	m := &menuLoop{h: a, reader: a.reader, out: a.out, domain: a.domain, logger: a.logger}
	return m.run(ctx)
}

// Close releases the journal, if one is open.
func (a *App) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

// finish is deferred by every handler: it waits for Enter, showing status
// when the command reports one.
func (a *App) finish(status *bool) {
	readContinue(a.reader, a.out, status)
}

// fail prints err for the operator and returns it so the loop can log it.
func (a *App) fail(ctx context.Context, err error) error {
	writeError(a.out, err)
	a.logger.Debug(ctx, "command error", "error", err)
	return err
}
