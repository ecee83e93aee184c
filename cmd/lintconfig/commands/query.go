package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/speakeasy-api/lintconfig/cmd/lintconfig/commands/cmdutil"
	"github.com/speakeasy-api/lintconfig/query"
	"github.com/spf13/cobra"
)

type queryOptions struct {
	legacy  bool
	forPath string
}

func newQueryCommand(s *session) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <expression> [files...]",
		Short: "Evaluate a JSONPath expression against the effective configuration",
		Long: `Resolve the fragment files and evaluate a JSONPath expression against the result, printing one
JSON value per match.

The configuration is queried in its serialized form, a mapping with the keys rules, globals,
parser_options, ignores and plugins. Examples:

  lintconfig query '$.rules["no-console"]' lint.yaml
  lintconfig query '$.rules.*~' lint.yaml          # rule names
  lintconfig query '$.ignores[*]' lint.yaml

Expressions follow RFC 9535 by default. Use --legacy (or the "engine" setting) for the older
yamlpath dialect.`,
		Args: cmdutil.MinArgs(1, "a JSONPath expression"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), s, opts, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Use the legacy yamlpath engine")
	cmd.Flags().StringVar(&opts.forPath, "for", "", "Resolve only the fragments that apply to this file path")

	return cmd
}

func runQuery(ctx context.Context, s *session, opts *queryOptions, expr string, args []string) error {
	engine := query.Engine(s.settings.Engine)
	if opts.legacy {
		engine = query.EngineLegacy
	}

	// Compile first so a bad expression fails before any file is read.
	if _, err := query.NewPath(expr, engine); err != nil {
		return err
	}

	fragments, err := s.fragments(ctx, args)
	if err != nil {
		return err
	}
	cfg, err := resolveFragments(opts.forPath, fragments)
	if err != nil {
		return err
	}

	nodes, err := query.Run(cfg, expr, engine)
	if err != nil {
		return err
	}
	values, err := query.Values(nodes)
	if err != nil {
		return err
	}

	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode match: %w", err)
		}
		fmt.Fprintln(s.app.Stdout, string(data))
	}
	return nil
}
