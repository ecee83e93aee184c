package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/speakeasy-api/lintconfig/cmd/lintconfig/commands/cmdutil"
	"github.com/speakeasy-api/lintconfig/format"
	"github.com/speakeasy-api/lintconfig/loader"
	"github.com/spf13/cobra"
)

func newValidateCommand(s *session) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check fragment files for malformed fragments",
		Long: `Check fragment files without resolving them and report every malformed fragment found.

Each problem names the file and line, the fragment (by name, or by position when unnamed) and the
offending field or rule. The command exits non-zero when any problem is found.

Output formats: text (default), json, summary (problem counts per fragment).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), s, outputFormat, args)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", format.Text, "Output format: text, json or summary")

	return cmd
}

func runValidate(ctx context.Context, s *session, outputFormat string, args []string) error {
	formatter, err := format.NewProblems(outputFormat)
	if err != nil {
		return err
	}

	files := cmdutil.FilesFromArgs(args, s.settings.Files, s.app.Stdin)
	if len(files) == 0 {
		return fmt.Errorf("no fragment files given: pass files or pipe a fragment to stdin")
	}

	problems, err := loader.Check(ctx, files, s.loaderOptions())
	if err != nil {
		return err
	}
	if _, err := s.app.Presets.Expand(s.environment(), s.settings.Presets...); err != nil {
		problems = append(problems, err)
	}

	out, err := formatter.Format(problems)
	if err != nil {
		return fmt.Errorf("failed to format problems: %w", err)
	}
	if _, err := io.WriteString(s.app.Stdout, out); err != nil {
		return err
	}

	if len(problems) > 0 {
		return fmt.Errorf("validation found %d problems", len(problems))
	}
	if outputFormat == format.Text || outputFormat == "" {
		fmt.Fprintf(s.app.Stdout, "✔ %d fragment files are valid\n", len(files))
	}
	return nil
}
