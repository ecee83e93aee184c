package cmdutil_test

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/lintconfig/cmd/lintconfig/commands/cmdutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStdin(t *testing.T) {
	t.Parallel()

	assert.True(t, cmdutil.IsStdin("-"))
	assert.False(t, cmdutil.IsStdin("lint.yaml"))
	assert.False(t, cmdutil.IsStdin(""))
}

func TestFilesFromArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		defaults []string
		expected []string
	}{
		{name: "args win", args: []string{"a.yaml"}, defaults: []string{"b.yaml"}, expected: []string{"a.yaml"}},
		{name: "defaults when no args", defaults: []string{"b.yaml"}, expected: []string{"b.yaml"}},
		{name: "nothing", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// A strings.Reader is never a pipe.
			assert.Equal(t, tt.expected, cmdutil.FilesFromArgs(tt.args, tt.defaults, strings.NewReader("")))
		})
	}
}

func TestArgAt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b", cmdutil.ArgAt([]string{"a", "b"}, 1, "x"))
	assert.Equal(t, "x", cmdutil.ArgAt([]string{"a"}, 1, "x"))
}

func TestMinArgs(t *testing.T) {
	t.Parallel()

	check := cmdutil.MinArgs(1, "a JSONPath expression")
	require.NoError(t, check(nil, []string{"$.rules"}))

	err := check(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a JSONPath expression")
}
