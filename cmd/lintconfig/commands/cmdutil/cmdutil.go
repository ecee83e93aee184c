// Package cmdutil provides shared CLI utilities for the lintconfig commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// StdinIndicator is the conventional Unix indicator to read from stdin.
const StdinIndicator = "-"

// IsStdin returns true if the given path indicates stdin should be used.
func IsStdin(path string) bool {
	return path == StdinIndicator
}

// StdinIsPiped returns true when r is a file connected to a pipe (not a terminal),
// meaning data is being piped in from another command or a file redirect.
func StdinIsPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// FilesFromArgs returns the fragment files to load: the positional args, else the configured
// defaults, else "-" when stdin is piped. The result may be empty.
func FilesFromArgs(args, defaults []string, stdin io.Reader) []string {
	switch {
	case len(args) > 0:
		return args
	case len(defaults) > 0:
		return defaults
	case StdinIsPiped(stdin):
		return []string{StdinIndicator}
	default:
		return nil
	}
}

// ArgAt returns args[i], or fallback when there are not enough args.
func ArgAt(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}

// MinArgs returns a cobra arg validator requiring at least n positional args.
func MinArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return fmt.Errorf("requires %s", what)
		}
		return nil
	}
}
