// Package config loads runtime configuration for the directory console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON settings file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "domain": "contoso.onmicrosoft.com",
//	  "tenant": "contoso.onmicrosoft.com",
//	  "client_id": "00000000-0000-0000-0000-000000000000",
//	  "client_secret": "...",
//	  "proxy_url": "http://proxy.local:3128",
//	  "proxy_user_name": "",
//	  "proxy_password": "",
//	  "timeout": 5,
//	  "resolve_concurrency": 8,
//	  "journal_dsn": "journal.db",
//	  "log_level": "warn"
//	}
//
// Domain selects the token authority; Tenant is the issuer stamped on
// userName sign-in identities and used when locating users by sign-in name.
package config
