package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "10", "-t", "3", "-d", "x.db", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://127.0.0.1:9090", PageSize: 10, RequestTimeout: 3 * time.Second,
				SessionDBPath: "x.db", LogLevel: "debug"},
		},
		{
			name:     "unrelated flags are ignored",
			args:     []string{"-c", "cfg.json", "-s", "8"},
			expected: &Config{PageSize: 8},
		},
		{name: "incorrect page size", args: []string{"-s", "abc"}, expectPanic: true},
		{name: "incorrect timeout", args: []string{"-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
