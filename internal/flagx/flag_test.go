package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "separate value kept with its flag",
			args:  []string{"-t", "10", "-d", "contoso.onmicrosoft.com"},
			names: []string{"-t"},
			want:  []string{"-t", "10"},
		},
		{
			name:  "equals form kept whole",
			args:  []string{"-l=debug", "-t", "3"},
			names: []string{"-l"},
			want:  []string{"-l=debug"},
		},
		{
			name:  "order preserved across owned flags",
			args:  []string{"-j", "journal.db", "-x", "1", "-w", "4"},
			names: []string{"-w", "-j"},
			want:  []string{"-j", "journal.db", "-w", "4"},
		},
		{
			name:  "foreign flags and positionals dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-c"},
			names: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "dash token is not taken as value",
			args:  []string{"-c", "-t", "5"},
			names: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "equals value may start with dashes",
			args:  []string{"--config=--odd.json"},
			names: []string{"--config"},
			want:  []string{"--config=--odd.json"},
		},
		{
			name:  "empty input",
			args:  nil,
			names: []string{"-c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.args, tt.names...))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short form", []string{"-c", "settings.json"}, "settings.json"},
		{"long form", []string{"-config", "alt.json", "-t", "9"}, "alt.json"},
		{"equals form", []string{"-t", "9", "-config=eq.json"}, "eq.json"},
		{"absent", []string{"-t", "9"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}
