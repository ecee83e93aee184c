// Package settings loads the lintconfig CLI's own settings.
//
// Sources are layered, later ones winning: built-in defaults, the global settings file
// (~/.lintconfig/settings.json), the project settings file (./.lintconfig.json) and LINTCONFIG_*
// environment variables. NODE_ENV=production also turns production mode on. Command line flags are
// applied on top by the commands themselves.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LINTCONFIG_"

// Settings are the CLI defaults that flags override.
type Settings struct {
	Production  bool     `koanf:"production"`
	Format      string   `koanf:"format" validate:"oneof=text json yaml"`
	Engine      string   `koanf:"engine" validate:"oneof=rfc9535 legacy"`
	LogLevel    string   `koanf:"log_level" validate:"oneof=trace debug info warn error disabled"`
	Color       bool     `koanf:"color"`
	Presets     []string `koanf:"presets" validate:"dive,required"`
	Files       []string `koanf:"files" validate:"dive,required"`
	Concurrency int      `koanf:"concurrency" validate:"min=0,max=256"`
}

// Paths locates the settings files. Empty paths are skipped.
type Paths struct {
	Global string
	Local  string
}

// DefaultPaths returns the global settings file under the user's home directory and the project
// settings file in the working directory.
func DefaultPaths() Paths {
	p := Paths{Local: ".lintconfig.json"}
	if home, err := os.UserHomeDir(); err == nil {
		p.Global = filepath.Join(home, ".lintconfig", "settings.json")
	}
	return p
}

// Load loads settings from defaults, the files in paths and the environment, then validates them.
// Missing files are skipped; unreadable or invalid ones are errors.
func Load(paths Paths) (*Settings, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	for _, source := range []struct{ name, path string }{
		{"global", paths.Global},
		{"local", paths.Local},
	} {
		if source.path == "" {
			continue
		}
		if _, err := os.Stat(source.path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(source.path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s settings %s: %w", source.name, source.path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment settings: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if os.Getenv("NODE_ENV") == "production" {
		s.Production = true
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &s, nil
}

// envTransform converts environment variable names to settings keys
// Example: LINTCONFIG_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
