package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SPENDWISE_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty stays empty", input: "", want: ""},
		{name: "absolute path untouched", input: "/tmp/spendwise.db", want: "/tmp/spendwise.db"},
		{name: "tilde prefix", input: "~/spendwise.db", want: filepath.Join(home, "spendwise.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$SPENDWISE_TEST_DIR/spendwise.db", want: "/var/data/spendwise.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
