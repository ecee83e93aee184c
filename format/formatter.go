// Package format renders resolved configurations and malformed fragment reports for the CLI.
package format

import (
	"github.com/speakeasy-api/lintconfig/errors"
	"github.com/speakeasy-api/lintconfig/resolver"
)

const ErrUnknownFormat = errors.Error("unknown output format")

// Formatter renders a resolved configuration.
type Formatter interface {
	Format(cfg *resolver.ResolvedConfig) (string, error)
}

// ProblemFormatter renders the problems found while checking fragment files.
type ProblemFormatter interface {
	Format(problems []error) (string, error)
}

// Names of the available output formats.
const (
	Text    = "text"
	JSON    = "json"
	YAML    = "yaml"
	Summary = "summary"
)

// New returns the configuration formatter for name. color only affects the text format.
func New(name string, color bool) (Formatter, error) {
	switch name {
	case "", Text:
		return NewTextFormatter(color), nil
	case JSON:
		return NewJSONFormatter(), nil
	case YAML:
		return NewYAMLFormatter(), nil
	default:
		return nil, ErrUnknownFormat.Wrapf("%q (expected %s, %s or %s)", name, Text, JSON, YAML)
	}
}

// NewProblems returns the problem formatter for name.
func NewProblems(name string) (ProblemFormatter, error) {
	switch name {
	case "", Text:
		return NewTextProblemFormatter(), nil
	case JSON:
		return NewJSONProblemFormatter(), nil
	case Summary:
		return NewSummaryFormatter(), nil
	default:
		return nil, ErrUnknownFormat.Wrapf("%q (expected %s, %s or %s)", name, Text, JSON, Summary)
	}
}
