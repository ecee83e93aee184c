// Package fragment defines configuration fragments: the ordered, named contributors that the resolver
// merges into one resolved configuration.
//
// A Fragment is a plain in-memory value. Fragments are built either in code (see the presets package)
// or from fragment files (see Document and the loader package). Both paths produce the same type, and
// neither consults ambient process state: anything environment dependent is decided by the Environment
// passed in at construction time.
package fragment

import (
	"fmt"
	"slices"

	"github.com/speakeasy-api/lintconfig/internal/pathmatch"
	"github.com/speakeasy-api/lintconfig/sequencedmap"
	"github.com/speakeasy-api/lintconfig/validation"
)

// Fragment is one ordered contributor to the final configuration.
type Fragment struct {
	// Name identifies the fragment in error messages. Unnamed fragments are identified by position.
	Name string
	// Files restricts the fragment to matching paths. Empty means all files.
	Files []string
	// Ignores lists path patterns the rule-checking engine should skip entirely.
	Ignores []string
	// Plugins lists the rule plugins this fragment wires in.
	Plugins []string
	// Globals maps global symbol names to their access mode.
	Globals *sequencedmap.Map[string, Access]
	// ParserOptions maps parser option names to opaque values.
	ParserOptions *sequencedmap.Map[string, any]
	// Rules maps rule names to their severity and options.
	Rules *sequencedmap.Map[string, RuleEntry]
}

// New creates an empty fragment with the given name.
func New(name string) *Fragment {
	return &Fragment{
		Name:          name,
		Globals:       sequencedmap.New[string, Access](),
		ParserOptions: sequencedmap.New[string, any](),
		Rules:         sequencedmap.New[string, RuleEntry](),
	}
}

// WithFiles appends file patterns.
func (f *Fragment) WithFiles(patterns ...string) *Fragment {
	f.Files = append(f.Files, patterns...)
	return f
}

// WithIgnores appends ignore patterns.
func (f *Fragment) WithIgnores(patterns ...string) *Fragment {
	f.Ignores = append(f.Ignores, patterns...)
	return f
}

// WithPlugins appends plugin names.
func (f *Fragment) WithPlugins(names ...string) *Fragment {
	f.Plugins = append(f.Plugins, names...)
	return f
}

// WithGlobal sets the access mode of a global symbol.
func (f *Fragment) WithGlobal(name string, access Access) *Fragment {
	if f.Globals == nil {
		f.Globals = sequencedmap.New[string, Access]()
	}
	f.Globals.Set(name, access)
	return f
}

// WithParserOption sets a parser option.
func (f *Fragment) WithParserOption(name string, value any) *Fragment {
	if f.ParserOptions == nil {
		f.ParserOptions = sequencedmap.New[string, any]()
	}
	f.ParserOptions.Set(name, value)
	return f
}

// WithRule sets a rule's severity and options.
func (f *Fragment) WithRule(name string, severity validation.Severity, options ...any) *Fragment {
	if f.Rules == nil {
		f.Rules = sequencedmap.New[string, RuleEntry]()
	}
	f.Rules.Set(name, RuleEntry{Severity: severity, Options: options})
	return f
}

// Identity returns the name used for this fragment in errors: its Name, or its position in the input.
func (f *Fragment) Identity(index int) string {
	if f != nil && f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("#%d", index)
}

// Validate performs the shape check of an in-memory fragment and returns the first problem found
// as a *validation.MalformedFragmentError. identity names the fragment in that error.
func (f *Fragment) Validate(identity string) error {
	if f == nil {
		return validation.NewMalformedFragmentError(identity, "", "fragment is nil")
	}

	if _, err := pathmatch.Compile(f.Files); err != nil {
		return validation.NewMalformedFragmentError(identity, "files", "%s", err.Error())
	}
	if _, err := pathmatch.Compile(f.Ignores); err != nil {
		return validation.NewMalformedFragmentError(identity, "ignores", "%s", err.Error())
	}

	for i, p := range f.Plugins {
		if p == "" {
			return validation.NewMalformedFragmentError(identity, fmt.Sprintf("plugins.%d", i), "plugin name is empty")
		}
	}

	for name, access := range f.Globals.All() {
		if name == "" {
			return validation.NewMalformedFragmentError(identity, "globals", "global name is empty")
		}
		if !access.IsValid() {
			return validation.NewMalformedFragmentError(identity, "globals."+name, "access mode %q is not one of readonly, writable, off", access)
		}
	}

	for name := range f.ParserOptions.Keys() {
		if name == "" {
			return validation.NewMalformedFragmentError(identity, "parser_options", "option name is empty")
		}
	}

	for name, entry := range f.Rules.All() {
		if name == "" {
			return validation.NewMalformedFragmentError(identity, "rules", "rule name is empty")
		}
		if !entry.Severity.IsValid() {
			return validation.NewMalformedRuleError(identity, name, "severity %q is not one of off, warn, error", entry.Severity)
		}
	}

	return nil
}

// Clone returns a copy of the fragment that shares no mutable state with f.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}

	c := &Fragment{
		Name:          f.Name,
		Files:         slices.Clone(f.Files),
		Ignores:       slices.Clone(f.Ignores),
		Plugins:       slices.Clone(f.Plugins),
		Globals:       sequencedmap.New[string, Access](),
		ParserOptions: sequencedmap.New[string, any](),
		Rules:         sequencedmap.New[string, RuleEntry](),
	}
	sequencedmap.Merge(c.Globals, f.Globals)
	for name, value := range f.ParserOptions.All() {
		c.ParserOptions.Set(name, CloneValue(value))
	}
	for name, entry := range f.Rules.All() {
		c.Rules.Set(name, entry.Clone())
	}
	return c
}
