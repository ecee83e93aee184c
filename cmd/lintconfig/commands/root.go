// Package commands implements the lintconfig command line interface.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/speakeasy-api/lintconfig/cmd/lintconfig/commands/cmdutil"
	"github.com/speakeasy-api/lintconfig/fragment"
	xlog "github.com/speakeasy-api/lintconfig/internal/log"
	"github.com/speakeasy-api/lintconfig/internal/settings"
	"github.com/speakeasy-api/lintconfig/loader"
	"github.com/speakeasy-api/lintconfig/presets"
	"github.com/speakeasy-api/lintconfig/system"
	"github.com/spf13/cobra"
)

// App holds the process level dependencies of the commands. Zero fields fall back to the real
// process streams, file system, settings files and built-in presets.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	FS            system.WritableVirtualFS
	SettingsPaths *settings.Paths
	Presets       *presets.Registry
}

func (a *App) withDefaults() *App {
	c := *a
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.FS == nil {
		c.FS = &system.FileSystem{}
	}
	if c.SettingsPaths == nil {
		p := settings.DefaultPaths()
		c.SettingsPaths = &p
	}
	if c.Presets == nil {
		c.Presets = presets.Default()
	}
	return &c
}

// session is the per invocation state shared by the commands: settings merged with global flags.
type session struct {
	app      *App
	settings *settings.Settings
	logger   zerolog.Logger

	verbose     bool
	production  bool
	presets     []string
	concurrency int
}

func (s *session) environment() fragment.Environment {
	return fragment.Environment{Production: s.settings.Production}
}

func (s *session) loaderOptions() loader.Options {
	return loader.Options{
		Production:  s.settings.Production,
		Presets:     s.app.Presets,
		FS:          s.app.FS,
		Stdin:       s.app.Stdin,
		Concurrency: s.settings.Concurrency,
		Logger:      &s.logger,
	}
}

// fragments expands the selected presets and loads the fragment files named by args, presets first.
func (s *session) fragments(ctx context.Context, args []string) ([]*fragment.Fragment, error) {
	files := cmdutil.FilesFromArgs(args, s.settings.Files, s.app.Stdin)
	if len(files) == 0 && len(s.settings.Presets) == 0 {
		return nil, fmt.Errorf("no fragment files given: pass files, --preset, or pipe a fragment to stdin")
	}

	out, err := s.app.Presets.Expand(s.environment(), s.settings.Presets...)
	if err != nil {
		return nil, err
	}

	loaded, err := loader.Load(ctx, files, s.loaderOptions())
	if err != nil {
		return nil, err
	}
	return append(out, loaded...), nil
}

// NewRootCommand builds the lintconfig command tree.
func NewRootCommand(app *App, version string) *cobra.Command {
	s := &session{app: app.withDefaults()}

	root := &cobra.Command{
		Use:   "lintconfig",
		Short: "Resolve layered lint configuration fragments into one effective configuration",
		Long: `Resolve ordered lint configuration fragments into the single configuration a rule-checking
engine consumes.

Fragments come from YAML or JSON fragment files and from built-in presets. They are merged in order:
ignores and plugins accumulate, globals and parser options are replaced key by key, and each rule's
severity and options are replaced by the last fragment that sets the rule. A rule set to "off" carries
no options.

Production mode selects the stricter severity for mode dependent rules. It is enabled by --production,
the "production" setting, LINTCONFIG_PRODUCTION=true or NODE_ENV=production.

SETTINGS:

Defaults for the flags are read from ~/.lintconfig/settings.json, then ./.lintconfig.json, then
LINTCONFIG_* environment variables (for example LINTCONFIG_FORMAT=json).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.init(cmd)
		},
	}

	root.SetIn(s.app.Stdin)
	root.SetOut(s.app.Stdout)
	root.SetErr(s.app.Stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&s.production, "production", false, "select production severities")
	flags.StringArrayVarP(&s.presets, "preset", "p", nil, "preset to prepend before the fragment files (can be repeated)")
	flags.IntVar(&s.concurrency, "concurrency", 0, "maximum number of fragment files read at once (0 means no limit)")

	root.AddCommand(newResolveCommand(s))
	root.AddCommand(newValidateCommand(s))
	root.AddCommand(newQueryCommand(s))
	root.AddCommand(newPresetsCommand(s))

	return root
}

func (s *session) init(cmd *cobra.Command) error {
	st, err := settings.Load(*s.app.SettingsPaths)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("production") {
		st.Production = s.production
	}
	if flags.Changed("preset") {
		st.Presets = s.presets
	}
	if flags.Changed("concurrency") {
		st.Concurrency = s.concurrency
	}
	if s.verbose {
		st.LogLevel = "debug"
	}
	s.settings = st

	s.logger = xlog.New(xlog.Config{Level: st.LogLevel, Output: s.app.Stderr, NoColor: !st.Color})
	s.logger.Debug().
		Bool("production", st.Production).
		Strs("presets", st.Presets).
		Msg("settings loaded")

	return nil
}
