package config

import (
	"errors"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the directory console.
//
// Timeout applies to every directory request, including token acquisition.
// An empty JournalDSN disables the operation journal.
type Config struct {
	Domain        string
	Tenant        string
	ClientID      string
	ClientSecret  string
	ProxyURL      string
	ProxyUserName string
	ProxyPassword string

	Timeout            time.Duration
	GraphEndpoint      string
	AuthorityHost      string
	ResolveConcurrency int

	JournalDSN string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Timeout = 5 * time.Second
	c.GraphEndpoint = "https://graph.microsoft.com/v1.0"
	c.AuthorityHost = "https://login.microsoftonline.com"
	c.ResolveConcurrency = 8
	c.LogLevel = "warn"
}

// Validate reports the first setting that prevents building a directory client.
func (c *Config) Validate() error {
	switch {
	case c.Domain == "":
		return errors.New("config: domain is required")
	case c.ClientID == "":
		return errors.New("config: client_id is required")
	case c.ClientSecret == "":
		return errors.New("config: client_secret is required")
	case c.Timeout <= 0:
		return errors.New("config: timeout must be positive")
	case c.ResolveConcurrency < 1:
		return errors.New("config: resolve_concurrency must be at least 1")
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return errors.New("config: proxy_url is not a valid URL")
		}
	}
	return nil
}

// Proxy returns the proxy URL with credentials attached, or nil when no proxy
// is configured.
func (c *Config) Proxy() (*url.URL, error) {
	if c.ProxyURL == "" {
		return nil, nil
	}
	u, err := url.Parse(c.ProxyURL)
	if err != nil {
		return nil, err
	}
	if c.ProxyUserName != "" {
		u.User = url.UserPassword(c.ProxyUserName, c.ProxyPassword)
	}
	return u, nil
}

// LoadConfig builds a Config from the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON settings file named in args (if any),
// then command-line flags. Later sources take precedence over earlier ones.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
