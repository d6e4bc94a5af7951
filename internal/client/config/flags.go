package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophdir/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   directory domain (tenant id or primary domain)
//	-t float    request timeout in seconds
//	-j string   operation journal DSN
//	-l string   log level
//	-w int      concurrent member lookups
//
// Only these flags are considered; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Domain, "d", cfg.Domain, "directory domain")
	timeout := fs.Float64("t", cfg.Timeout.Seconds(), "request timeout (in seconds)")
	fs.StringVar(&cfg.JournalDSN, "j", cfg.JournalDSN, "operation journal DSN (sqlite file or postgres URL)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&cfg.ResolveConcurrency, "w", cfg.ResolveConcurrency, "concurrent member lookups")

	if err := fs.Parse(flagx.Filter(args, "-d", "-t", "-j", "-l", "-w")); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout * float64(time.Second))
}
