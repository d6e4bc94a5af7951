// Package flagx lets independent configuration stages share one argument list.
// Each stage keeps only the flags it owns and parses them with its own FlagSet,
// so unknown flags from other stages never abort parsing.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Filter returns the subset of args that belongs to the named flags.
//
// Both "-t 10" and "-t=10" forms are recognised. For the separate form the
// following token is kept as the value unless it starts with a dash.
func Filter(args []string, names ...string) []string {
	own := make(map[string]struct{}, len(names))
	for _, n := range names {
		own[n] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := own[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		if _, ok := own[arg]; !ok {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept
}

// ConfigFile extracts the settings file path given with -c or -config.
// It returns an empty string when neither flag is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to the settings file")
	fs.StringVar(&path, "c", "", "path to the settings file (short)")
	_ = fs.Parse(Filter(args, "-c", "-config", "--config"))

	return path
}
