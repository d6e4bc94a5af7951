package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/flagx"
	json "github.com/json-iterator/go"
)

// JsonConfig is the on-disk shape of the settings file. Timeout is given in
// seconds and may be fractional.
type JsonConfig struct {
	Domain             string  `json:"domain"`
	Tenant             string  `json:"tenant"`
	ClientID           string  `json:"client_id"`
	ClientSecret       string  `json:"client_secret"`
	ProxyURL           string  `json:"proxy_url"`
	ProxyUserName      string  `json:"proxy_user_name"`
	ProxyPassword      string  `json:"proxy_password"`
	Timeout            float64 `json:"timeout"`
	GraphEndpoint      string  `json:"graph_endpoint"`
	AuthorityHost      string  `json:"authority_host"`
	ResolveConcurrency int     `json:"resolve_concurrency"`
	JournalDSN         string  `json:"journal_dsn"`
	LogLevel           string  `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the settings file given
// by -c or -config. Without either flag it leaves cfg untouched. Read and
// decode errors panic; a console without settings cannot do anything useful.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.Domain, jc.Domain)
	overlay(&cfg.Tenant, jc.Tenant)
	overlay(&cfg.ClientID, jc.ClientID)
	overlay(&cfg.ClientSecret, jc.ClientSecret)
	overlay(&cfg.ProxyURL, jc.ProxyURL)
	overlay(&cfg.ProxyUserName, jc.ProxyUserName)
	overlay(&cfg.ProxyPassword, jc.ProxyPassword)
	overlay(&cfg.GraphEndpoint, jc.GraphEndpoint)
	overlay(&cfg.AuthorityHost, jc.AuthorityHost)
	overlay(&cfg.JournalDSN, jc.JournalDSN)
	overlay(&cfg.LogLevel, jc.LogLevel)

	if jc.Timeout > 0 {
		cfg.Timeout = time.Duration(jc.Timeout * float64(time.Second))
	}
	if jc.ResolveConcurrency > 0 {
		cfg.ResolveConcurrency = jc.ResolveConcurrency
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
