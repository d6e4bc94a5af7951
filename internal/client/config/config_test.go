package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", c.GraphEndpoint)
	assert.Equal(t, "https://login.microsoftonline.com", c.AuthorityHost)
	assert.Equal(t, 8, c.ResolveConcurrency)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Empty(t, c.JournalDSN)
}

func TestLoad_NoArgsKeepsDefaults(t *testing.T) {
	cfg := Load(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.ResolveConcurrency)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{Domain: "contoso", ClientID: "id", ClientSecret: "secret"}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"no domain", func(c *Config) { c.Domain = "" }, "domain"},
		{"no client id", func(c *Config) { c.ClientID = "" }, "client_id"},
		{"no secret", func(c *Config) { c.ClientSecret = "" }, "client_secret"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"no workers", func(c *Config) { c.ResolveConcurrency = 0 }, "resolve_concurrency"},
		{"bad proxy", func(c *Config) { c.ProxyURL = "http://[::1" }, "proxy_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProxy(t *testing.T) {
	c := Config{}
	u, err := c.Proxy()
	require.NoError(t, err)
	assert.Nil(t, u)

	c.ProxyURL = "http://proxy.local:3128"
	c.ProxyUserName = "svc"
	c.ProxyPassword = "p@ss"
	u, err = c.Proxy()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.local:3128", u.Host)
	assert.Equal(t, "svc", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss", pw)
}
