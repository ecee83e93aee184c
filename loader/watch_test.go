package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/loader"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/speakeasy-api/lintconfig/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadResult struct {
	fragments []*fragment.Fragment
	err       error
}

// waitForLoad returns the first load accepted by match. Editors and os.WriteFile may produce
// several events per save, so intermediate loads are skipped.
func waitForLoad(t *testing.T, results <-chan loadResult, match func(loadResult) bool) loadResult {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if match(r) {
				return r
			}
		case <-timeout:
			t.Fatal("timed out waiting for a matching load")
			return loadResult{}
		}
	}
}

func severityIs(want validation.Severity) func(loadResult) bool {
	return func(r loadResult) bool {
		if r.err != nil {
			return false
		}
		cfg, err := resolver.Resolve(r.fragments...)
		if err != nil {
			return false
		}
		entry, _ := cfg.Rule("no-var")
		return entry.Severity == want
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: {no-var: error}\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan loadResult, 16)
	done := make(chan error, 1)

	go func() {
		done <- loader.Watch(ctx, []string{path}, loader.Options{Debounce: 50 * time.Millisecond}, func(fragments []*fragment.Fragment, err error) {
			results <- loadResult{fragments: fragments, err: err}
		})
	}()

	first := <-results
	require.NoError(t, first.err)
	cfg, err := resolver.Resolve(first.fragments...)
	require.NoError(t, err)
	entry, _ := cfg.Rule("no-var")
	assert.Equal(t, validation.SeverityError, entry.Severity, "the initial load should run before any change")

	require.NoError(t, os.WriteFile(path, []byte("rules: {no-var: warn}\n"), 0o644))

	waitForLoad(t, results, severityIs(validation.SeverityWarn))

	require.NoError(t, os.WriteFile(path, []byte("rules: {no-var: maybe}\n"), 0o644))

	broken := waitForLoad(t, results, func(r loadResult) bool { return r.err != nil })
	assert.ErrorIs(t, broken.err, validation.ErrMalformedFragment, "a broken edit should be reported, not stop the watcher")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatch_Stdin_Error(t *testing.T) {
	t.Parallel()

	err := loader.Watch(context.Background(), []string{loader.StdinPath}, loader.Options{}, func([]*fragment.Fragment, error) {
		t.Fatal("callback should not run")
	})
	require.Error(t, err)
}
