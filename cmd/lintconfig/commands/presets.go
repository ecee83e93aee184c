package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/speakeasy-api/lintconfig/format"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/spf13/cobra"
)

func newPresetsCommand(s *session) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List the built-in presets or print one resolved preset",
		Long: `Without arguments, list the available presets. With a preset name, resolve that preset on its own
and print the result. Presets can be referenced from fragment files by name, either as a list item or
through "extends", and selected on the command line with --preset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listPresets(s)
			}
			return showPreset(s, args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text, json or yaml (default from settings)")

	return cmd
}

func listPresets(s *session) error {
	w := tabwriter.NewWriter(s.app.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range s.app.Presets.Names() {
		p, _ := s.app.Presets.Get(name)
		fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
	}
	return w.Flush()
}

func showPreset(s *session, name, outputFormat string) error {
	if outputFormat == "" {
		outputFormat = s.settings.Format
	}
	formatter, err := format.New(outputFormat, s.settings.Color)
	if err != nil {
		return err
	}

	fragments, err := s.app.Presets.Expand(s.environment(), name)
	if err != nil {
		return err
	}
	cfg, err := resolver.Resolve(fragments...)
	if err != nil {
		return err
	}

	out, err := formatter.Format(cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.app.Stdout, out)
	return err
}
