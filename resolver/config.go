package resolver

import (
	"encoding/json"
	"slices"

	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/hashing"
	"github.com/speakeasy-api/lintconfig/internal/pathmatch"
	"github.com/speakeasy-api/lintconfig/sequencedmap"
	"gopkg.in/yaml.v3"
)

// ResolvedConfig is the single flattened configuration handed to the rule-checking engine.
// It is immutable once returned: accessors hand out copies.
type ResolvedConfig struct {
	rules         *sequencedmap.Map[string, fragment.RuleEntry]
	globals       *sequencedmap.Map[string, fragment.Access]
	parserOptions *sequencedmap.Map[string, any]
	ignores       []string
	plugins       []string

	// ignoreMatcher is compiled from ignores whenever they grow; it is never mutated, so clones share it.
	ignoreMatcher *pathmatch.Matcher
}

func newResolvedConfig() *ResolvedConfig {
	return &ResolvedConfig{
		rules:         sequencedmap.New[string, fragment.RuleEntry](),
		globals:       sequencedmap.New[string, fragment.Access](),
		parserOptions: sequencedmap.New[string, any](),
	}
}

// Rules returns the effective rule map in first-seen order.
func (c *ResolvedConfig) Rules() *sequencedmap.Map[string, fragment.RuleEntry] {
	out := sequencedmap.New[string, fragment.RuleEntry]()
	for name, entry := range c.rules.All() {
		out.Set(name, entry.Clone())
	}
	return out
}

// Rule returns the effective entry for a single rule.
func (c *ResolvedConfig) Rule(name string) (fragment.RuleEntry, bool) {
	entry, ok := c.rules.Get(name)
	if !ok {
		return fragment.RuleEntry{}, false
	}
	return entry.Clone(), true
}

// EnabledRules returns the names of rules whose severity is warn or error, in first-seen order.
func (c *ResolvedConfig) EnabledRules() []string {
	var names []string
	for name, entry := range c.rules.All() {
		if entry.Severity.Enabled() {
			names = append(names, name)
		}
	}
	return names
}

// Globals returns the effective global symbol map.
func (c *ResolvedConfig) Globals() *sequencedmap.Map[string, fragment.Access] {
	return c.globals.Clone()
}

// ParserOptions returns a deep copy of the effective parser options.
func (c *ResolvedConfig) ParserOptions() *sequencedmap.Map[string, any] {
	out := sequencedmap.New[string, any]()
	for name, value := range c.parserOptions.All() {
		out.Set(name, fragment.CloneValue(value))
	}
	return out
}

// Ignores returns the union of all ignore patterns, in first-seen order.
func (c *ResolvedConfig) Ignores() []string {
	return slices.Clone(c.ignores)
}

// Plugins returns the union of all plugin names, in first-seen order.
func (c *ResolvedConfig) Plugins() []string {
	return slices.Clone(c.plugins)
}

// IsIgnored reports whether path matches the effective ignore patterns.
func (c *ResolvedConfig) IsIgnored(path string) bool {
	return c.ignoreMatcher.Match(path)
}

// IsEmpty reports whether nothing was contributed to the configuration.
func (c *ResolvedConfig) IsEmpty() bool {
	return c.rules.Len() == 0 &&
		c.globals.Len() == 0 &&
		c.parserOptions.Len() == 0 &&
		len(c.ignores) == 0 &&
		len(c.plugins) == 0
}

// Clone returns a deep copy of the configuration.
func (c *ResolvedConfig) Clone() *ResolvedConfig {
	return &ResolvedConfig{
		rules:         c.Rules(),
		globals:       c.Globals(),
		parserOptions: c.ParserOptions(),
		ignores:       c.Ignores(),
		plugins:       c.Plugins(),
		ignoreMatcher: c.ignoreMatcher,
	}
}

// Equal reports whether both configurations hold the same data in the same order.
func (c *ResolvedConfig) Equal(other *ResolvedConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.rules.Equal(other.rules) &&
		c.globals.Equal(other.globals) &&
		c.parserOptions.Equal(other.parserOptions) &&
		slices.Equal(c.ignores, other.ignores) &&
		slices.Equal(c.plugins, other.plugins)
}

// Hash returns a stable fingerprint of the configuration's content.
func (c *ResolvedConfig) Hash() string {
	return hashing.Hash(c.document())
}

// Document is the serialized form of a ResolvedConfig.
type Document struct {
	Rules         *sequencedmap.Map[string, fragment.RuleEntry] `yaml:"rules" json:"rules"`
	Globals       *sequencedmap.Map[string, fragment.Access]    `yaml:"globals" json:"globals"`
	ParserOptions *sequencedmap.Map[string, any]                `yaml:"parser_options" json:"parser_options"`
	Ignores       []string                                      `yaml:"ignores" json:"ignores"`
	Plugins       []string                                      `yaml:"plugins" json:"plugins"`
}

func (c *ResolvedConfig) document() Document {
	ignores := c.Ignores()
	if ignores == nil {
		ignores = []string{}
	}
	plugins := c.Plugins()
	if plugins == nil {
		plugins = []string{}
	}
	return Document{
		Rules:         c.Rules(),
		Globals:       c.Globals(),
		ParserOptions: c.ParserOptions(),
		Ignores:       ignores,
		Plugins:       plugins,
	}
}

// MarshalYAML writes the configuration as a mapping of rules, globals, parser_options, ignores and plugins.
func (c *ResolvedConfig) MarshalYAML() (any, error) {
	return c.document(), nil
}

// MarshalJSON writes the configuration with the same layout as MarshalYAML.
func (c *ResolvedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// Node returns the configuration as a YAML node tree, the form queried by JSONPath expressions.
func (c *ResolvedConfig) Node() (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(c.document()); err != nil {
		return nil, err
	}
	return &node, nil
}
