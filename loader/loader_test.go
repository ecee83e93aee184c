package loader_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/speakeasy-api/lintconfig/errors"
	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/loader"
	"github.com/speakeasy-api/lintconfig/presets"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/speakeasy-api/lintconfig/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseFile = `- ignores: [dist/]
- name: base
  global_sets: [node]
  rules:
    no-var: error
    no-console: {production: error, development: warn}
`

const overrideFile = `name: override
globals:
  window: readonly
rules:
  no-var: "off"
  curly: [error, all]
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"base.yaml":     {Data: []byte(baseFile)},
		"override.yaml": {Data: []byte(overrideFile)},
		"presets.yaml":  {Data: []byte("- eslint-recommended\n- name: local\n  extends: [prettier-recommended]\n  rules:\n    curly: [error, all]\n")},
		"bad.yaml":      {Data: []byte("name: bad\nrules:\n  no-var: maybe\n")},
		"unknown.yaml":  {Data: []byte("- no-such-preset\n")},
	}
}

func fragmentNames(fragments []*fragment.Fragment) []string {
	names := make([]string, 0, len(fragments))
	for _, f := range fragments {
		names = append(names, f.Name)
	}
	return names
}

func TestLoad_PreservesArgumentOrder(t *testing.T) {
	t.Parallel()

	fragments, err := loader.Load(context.Background(), []string{"override.yaml", "base.yaml"}, loader.Options{FS: testFS()})
	require.NoError(t, err)

	assert.Equal(t, []string{"override", "base.yaml#0", "base"}, fragmentNames(fragments))

	cfg, err := resolver.Resolve(fragments...)
	require.NoError(t, err)

	entry, _ := cfg.Rule("no-var")
	assert.Equal(t, validation.SeverityError, entry.Severity, "base.yaml comes last and should win")
}

func TestLoad_ProductionMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		production bool
		expected   validation.Severity
	}{
		{name: "production", production: true, expected: validation.SeverityError},
		{name: "development", production: false, expected: validation.SeverityWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fragments, err := loader.Load(context.Background(), []string{"base.yaml"}, loader.Options{FS: testFS(), Production: tt.production})
			require.NoError(t, err)

			cfg, err := resolver.Resolve(fragments...)
			require.NoError(t, err)

			entry, _ := cfg.Rule("no-console")
			assert.Equal(t, tt.expected, entry.Severity)
		})
	}
}

func TestLoad_ExpandsPresets(t *testing.T) {
	t.Parallel()

	fragments, err := loader.Load(context.Background(), []string{"presets.yaml"}, loader.Options{FS: testFS()})
	require.NoError(t, err)

	assert.Equal(t, []string{"eslint/recommended", "prettier/recommended", "local"}, fragmentNames(fragments),
		"preset items and extends should be spliced in place")

	cfg, err := resolver.Resolve(fragments...)
	require.NoError(t, err)

	entry, _ := cfg.Rule("curly")
	assert.Equal(t, fragment.RuleEntry{Severity: validation.SeverityError, Options: []any{"all"}}, entry,
		"the local fragment should override the prettier preset")
}

func TestLoad_CustomRegistry(t *testing.T) {
	t.Parallel()

	registry := presets.NewRegistry()
	registry.MustRegister(presets.Preset{Name: "team", Build: func(env fragment.Environment) []*fragment.Fragment {
		return []*fragment.Fragment{fragment.New("team").WithPlugins("team-rules")}
	}})

	fsys := fstest.MapFS{"lint.yaml": {Data: []byte("- team\n")}}
	fragments, err := loader.Load(context.Background(), []string{"lint.yaml"}, loader.Options{FS: fsys, Presets: registry})
	require.NoError(t, err)
	assert.Equal(t, []string{"team"}, fragmentNames(fragments))
}

func TestLoad_Stdin(t *testing.T) {
	t.Parallel()

	opts := loader.Options{FS: testFS(), Stdin: strings.NewReader("name: piped\nrules: {eqeqeq: warn}\n")}
	fragments, err := loader.Load(context.Background(), []string{"base.yaml", loader.StdinPath}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"base.yaml#0", "base", "piped"}, fragmentNames(fragments))
}

func TestLoad_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		paths     []string
		malformed bool
		contains  string
	}{
		{name: "bad severity", paths: []string{"base.yaml", "bad.yaml"}, malformed: true, contains: `rule "no-var"`},
		{name: "unknown preset", paths: []string{"unknown.yaml"}, malformed: true, contains: `"no-such-preset"`},
		{name: "missing file", paths: []string{"missing.yaml"}, contains: "read missing.yaml"},
		{name: "stdin twice", paths: []string{"-", "-"}, contains: "only be given once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fragments, err := loader.Load(context.Background(), tt.paths, loader.Options{FS: testFS(), Stdin: strings.NewReader("")})
			require.Error(t, err)
			assert.Nil(t, fragments)
			assert.Equal(t, tt.malformed, errors.Is(err, validation.ErrMalformedFragment))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_MalformedErrorIsLocated(t *testing.T) {
	t.Parallel()

	_, err := loader.Load(context.Background(), []string{"bad.yaml"}, loader.Options{FS: testFS()})
	require.Error(t, err)

	var mfe *validation.MalformedFragmentError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "bad", mfe.Fragment)
	assert.Equal(t, "no-var", mfe.Rule)
	assert.Equal(t, "bad.yaml:3", mfe.Source)
}

func TestLoad_Concurrency(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{}
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		path := name + ".yaml"
		fsys[path] = &fstest.MapFile{Data: []byte("name: " + name + "\n")}
		paths = append(paths, path)
	}

	fragments, err := loader.Load(context.Background(), paths, loader.Options{FS: fsys, Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, fragmentNames(fragments))
}

func TestLoad_LogsAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := loader.Load(context.Background(), []string{"base.yaml"}, loader.Options{FS: testFS(), Logger: &logger})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"file":"base.yaml"`)
	assert.Contains(t, buf.String(), `"component":"loader"`)
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, []string{"base.yaml"}, loader.Options{FS: testFS()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheck_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"good.yaml": {Data: []byte(baseFile)},
		"two.yaml":  {Data: []byte("- globals: {window: sometimes}\n- rules: {curly: [loud, all]}\n")},
		"bad.yaml":  {Data: []byte("name: bad\nrules:\n  no-var: maybe\n")},
	}

	problems, err := loader.Check(context.Background(), []string{"good.yaml", "two.yaml", "bad.yaml"}, loader.Options{FS: fsys})
	require.NoError(t, err)
	require.Len(t, problems, 3)

	var sources []string
	for _, p := range problems {
		var mfe *validation.MalformedFragmentError
		require.True(t, errors.As(p, &mfe))
		sources = append(sources, mfe.Source)
	}
	assert.Equal(t, []string{"bad.yaml:3", "two.yaml:1", "two.yaml:2"}, sources)
}

func TestCheck_Clean(t *testing.T) {
	t.Parallel()

	problems, err := loader.Check(context.Background(), []string{"base.yaml", "override.yaml"}, loader.Options{FS: testFS()})
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_ReportsEveryEntryInFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"multi.yaml": {Data: []byte("- no-such-preset\n- name: a\n  global_sets: [nope]\n- name: b\n  extends: [missing]\n- name: c\n  rules: {no-var: error}\n")},
	}

	problems, err := loader.Check(context.Background(), []string{"multi.yaml"}, loader.Options{FS: fsys})
	require.NoError(t, err)
	require.Len(t, problems, 3, "every failing entry should be reported, not only the first")

	var got []string
	for _, p := range problems {
		var mfe *validation.MalformedFragmentError
		require.True(t, errors.As(p, &mfe))
		got = append(got, mfe.Fragment+"@"+mfe.Source)
	}
	assert.Equal(t, []string{"multi.yaml#0@multi.yaml:1", "a@multi.yaml:2", "b@multi.yaml:4"}, got)

	_, err = loader.LoadBytes(fsys["multi.yaml"].Data, "multi.yaml", loader.Options{})
	var mfe *validation.MalformedFragmentError
	require.True(t, errors.As(err, &mfe), "loading still fails fast")
	assert.Equal(t, "multi.yaml:1", mfe.Source)
}
