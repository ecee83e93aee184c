// Package loader reads fragment files into ordered fragment lists ready for resolution.
//
// Each file goes through the same pipeline: a shape check against the fragment file schema, decoding
// into documents, preset expansion (preset name items and extends) and finally building fragments for
// the configured environment. Files are read concurrently; the returned fragments always follow
// argument order.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/speakeasy-api/lintconfig/fragment"
	xlog "github.com/speakeasy-api/lintconfig/internal/log"
	"github.com/speakeasy-api/lintconfig/presets"
	"github.com/speakeasy-api/lintconfig/system"
	"github.com/speakeasy-api/lintconfig/validation"
	"golang.org/x/sync/errgroup"
)

// StdinPath is the path argument that reads a fragment file from Options.Stdin.
const StdinPath = "-"

// Options configures loading.
type Options struct {
	// Production selects production severities for mode dependent rules and presets.
	Production bool
	// Presets resolves preset names. Defaults to presets.Default().
	Presets *presets.Registry
	// FS reads the files. Defaults to the operating system file system.
	FS system.VirtualFS
	// Stdin is read for the "-" path. Defaults to os.Stdin.
	Stdin io.Reader
	// Concurrency bounds the number of files read at once. Zero means no limit.
	Concurrency int
	// Logger receives debug progress. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Debounce is how long Watch waits for further changes before reloading. Defaults to 100ms.
	Debounce time.Duration
}

func (o Options) withDefaults() Options {
	if o.Presets == nil {
		o.Presets = presets.Default()
	}
	if o.FS == nil {
		o.FS = &system.FileSystem{}
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Debounce <= 0 {
		o.Debounce = 100 * time.Millisecond
	}
	if o.Logger == nil {
		l := xlog.Nop()
		o.Logger = &l
	}
	return o
}

func (o Options) environment() fragment.Environment {
	return fragment.Environment{Production: o.Production}
}

// Load reads every path and returns their fragments concatenated in argument order.
// The first failure cancels the remaining reads and is returned; malformed content is reported as a
// *validation.MalformedFragmentError located by file and line.
func Load(ctx context.Context, paths []string, opts Options) ([]*fragment.Fragment, error) {
	opts = opts.withDefaults()
	logger := xlog.WithComponent(*opts.Logger, "loader")
	start := time.Now()

	stdin, err := readStdinOnce(paths, opts.Stdin)
	if err != nil {
		return nil, err
	}

	results := make([][]*fragment.Fragment, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var data []byte
			if path == StdinPath {
				data = stdin
			} else {
				var err error
				data, err = system.ReadFile(opts.FS, path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
			}

			fragments, err := LoadBytes(data, path, opts)
			if err != nil {
				return err
			}

			logger.Debug().Str(xlog.FieldFile, path).Int(xlog.FieldCount, len(fragments)).Msg("loaded fragment file")
			results[i] = fragments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*fragment.Fragment
	for _, fragments := range results {
		out = append(out, fragments...)
	}

	logger.Debug().
		Int(xlog.FieldCount, len(out)).
		Dur(xlog.FieldDuration, time.Since(start)).
		Msg("loaded fragments")

	return out, nil
}

// LoadBytes runs the loading pipeline over the contents of one fragment file.
// source names the file in errors and identifies its unnamed fragments ("source#index").
func LoadBytes(data []byte, source string, opts Options) ([]*fragment.Fragment, error) {
	opts = opts.withDefaults()

	if err := fragment.CheckShape(data, source); err != nil {
		return nil, firstMalformed(err)
	}

	entries, err := fragment.ParseFile(data, source)
	if err != nil {
		return nil, err
	}

	out, errs := buildEntries(entries, source, opts)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return out, nil
}

// buildEntries turns parsed entries into fragments, expanding presets in place. It keeps going after a
// failing entry and returns the problems in entry order; the fragments are only meaningful when there
// are none.
func buildEntries(entries []fragment.Entry, source string, opts Options) ([]*fragment.Fragment, []error) {
	env := opts.environment()

	var out []*fragment.Fragment
	var errs []error
	for _, entry := range entries {
		identity := fmt.Sprintf("%s#%d", source, entry.Index)

		if entry.Preset != "" {
			expanded, err := opts.Presets.Expand(env, entry.Preset)
			if err != nil {
				errs = append(errs, validation.NewMalformedFragmentError(identity, "", "%s", err.Error()).
					WithSource(locate(source, entry.Line)))
				continue
			}
			out = append(out, expanded...)
			continue
		}

		doc := entry.Document
		if doc.Name != "" {
			identity = doc.Name
		}
		if len(doc.Extends) > 0 {
			expanded, err := opts.Presets.Expand(env, doc.Extends...)
			if err != nil {
				errs = append(errs, validation.NewMalformedFragmentError(identity, "extends", "%s", err.Error()).
					WithSource(locate(source, entry.Line)))
				continue
			}
			out = append(out, expanded...)
		}

		f, err := doc.Build(env, identity, source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := f.Validate(identity); err != nil {
			if mfe, ok := err.(*validation.MalformedFragmentError); ok {
				err = mfe.WithSource(locate(source, entry.Line))
			}
			errs = append(errs, err)
			continue
		}
		out = append(out, f)
	}

	return out, errs
}

func readStdinOnce(paths []string, stdin io.Reader) ([]byte, error) {
	count := 0
	for _, p := range paths {
		if p == StdinPath {
			count++
		}
	}
	switch count {
	case 0:
		return nil, nil
	case 1:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("stdin (%q) may only be given once", StdinPath)
	}
}

func locate(source string, line int) string {
	if line <= 0 {
		return source
	}
	return fmt.Sprintf("%s:%d", source, line)
}
