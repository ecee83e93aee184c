package loader

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/lintconfig/errors"
	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/system"
	"github.com/speakeasy-api/lintconfig/validation"
	"golang.org/x/sync/errgroup"
)

// Check validates every path without stopping at the first problem.
// It returns all malformed fragment errors across all files, sorted by location, or nil when every file
// is well formed. I/O failures are returned as they are.
func Check(ctx context.Context, paths []string, opts Options) ([]error, error) {
	opts = opts.withDefaults()

	stdin, err := readStdinOnce(paths, opts.Stdin)
	if err != nil {
		return nil, err
	}

	problems := make([][]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data := stdin
			if path != StdinPath {
				var err error
				data, err = system.ReadFile(opts.FS, path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
			}

			problems[i] = checkBytes(data, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []error
	for _, p := range problems {
		all = append(all, p...)
	}
	validation.SortMalformedErrors(all)
	return all, nil
}

func checkBytes(data []byte, source string, opts Options) []error {
	if err := fragment.CheckShape(data, source); err != nil {
		return errors.UnwrapErrors(err)
	}
	entries, err := fragment.ParseFile(data, source)
	if err != nil {
		return []error{err}
	}
	_, errs := buildEntries(entries, source, opts)
	return errs
}

// firstMalformed picks the first problem, by location, out of a joined shape check error.
func firstMalformed(err error) error {
	errs := errors.UnwrapErrors(err)
	validation.SortMalformedErrors(errs)
	return errs[0]
}
