package commands

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/speakeasy-api/lintconfig/format"
	"github.com/speakeasy-api/lintconfig/fragment"
	xlog "github.com/speakeasy-api/lintconfig/internal/log"
	"github.com/speakeasy-api/lintconfig/loader"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	format  string
	forPath string
	output  string
	watch   bool
	color   bool
}

func newResolveCommand(s *session) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [files...]",
		Short: "Print the effective configuration of the given fragment files",
		Long: `Resolve fragment files, in order, into one effective configuration and print it.

Presets selected with --preset come before the files. Use '-' to read a fragment file from stdin:
  cat lint.yaml | lintconfig resolve -

Use --for to resolve only the fragments that apply to one source file (fragments whose "files"
patterns match it, plus every fragment without "files"). Use --watch to print the configuration again
whenever one of the files changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), s, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json or yaml (default from settings)")
	cmd.Flags().StringVar(&opts.forPath, "for", "", "Resolve only the fragments that apply to this file path")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the configuration to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-resolve whenever a fragment file changes")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Color the text output")

	return cmd
}

func runResolve(ctx context.Context, s *session, opts *resolveOptions, args []string) error {
	formatName := opts.format
	if formatName == "" {
		formatName = s.settings.Format
	}
	formatter, err := format.New(formatName, opts.color || s.settings.Color)
	if err != nil {
		return err
	}

	if opts.watch {
		return watchResolve(ctx, s, opts, formatter, args)
	}

	fragments, err := s.fragments(ctx, args)
	if err != nil {
		return err
	}
	return emit(s, opts, formatter, fragments)
}

func resolveFragments(forPath string, fragments []*fragment.Fragment) (*resolver.ResolvedConfig, error) {
	if forPath != "" {
		return resolver.ResolveForFile(forPath, fragments...)
	}
	return resolver.Resolve(fragments...)
}

func emit(s *session, opts *resolveOptions, formatter format.Formatter, fragments []*fragment.Fragment) error {
	cfg, err := resolveFragments(opts.forPath, fragments)
	if err != nil {
		return err
	}

	s.logger.Debug().
		Int(xlog.FieldCount, len(fragments)).
		Str(xlog.FieldHash, cfg.Hash()).
		Msg("resolved configuration")

	out, err := formatter.Format(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	if opts.output != "" {
		if err := s.app.FS.WriteFile(opts.output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.output, err)
		}
		fmt.Fprintf(s.app.Stderr, "Wrote resolved configuration to %s\n", opts.output)
		return nil
	}

	_, err = io.WriteString(s.app.Stdout, out)
	return err
}

func watchResolve(ctx context.Context, s *session, opts *resolveOptions, formatter format.Formatter, args []string) error {
	if len(args) == 0 {
		args = s.settings.Files
	}
	if len(args) == 0 {
		return fmt.Errorf("--watch needs fragment files to watch")
	}

	head, err := s.app.Presets.Expand(s.environment(), s.settings.Presets...)
	if err != nil {
		return err
	}

	return loader.Watch(ctx, args, s.loaderOptions(), func(loaded []*fragment.Fragment, err error) {
		if err == nil {
			err = emit(s, opts, formatter, slices.Concat(head, loaded))
		}
		if err != nil {
			fmt.Fprintf(s.app.Stderr, "Error: %v\n", err)
		}
	})
}
