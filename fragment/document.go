package fragment

import (
	"fmt"

	"github.com/speakeasy-api/lintconfig/globals"
	"github.com/speakeasy-api/lintconfig/sequencedmap"
	"github.com/speakeasy-api/lintconfig/validation"
	"gopkg.in/yaml.v3"
)

// Document is the file form of a fragment.
//
// It differs from Fragment in three ways: it may name presets to splice in before it (Extends), it may
// pull in predefined global sets by name (GlobalSets), and its rule values may be mode dependent
// ({production: error, development: warn}) until Build picks one for a given Environment.
type Document struct {
	Name          string                               `yaml:"name,omitempty"`
	Files         []string                             `yaml:"files,omitempty"`
	Ignores       []string                             `yaml:"ignores,omitempty"`
	Extends       []string                             `yaml:"extends,omitempty"`
	Plugins       []string                             `yaml:"plugins,omitempty"`
	GlobalSets    []string                             `yaml:"global_sets,omitempty"`
	Globals       *sequencedmap.Map[string, yaml.Node] `yaml:"globals,omitempty"`
	ParserOptions *sequencedmap.Map[string, any]       `yaml:"parser_options,omitempty"`
	Rules         *sequencedmap.Map[string, yaml.Node] `yaml:"rules,omitempty"`

	// Line is the line the document starts on in its file.
	Line int `yaml:"-"`
}

// UnmarshalYAML decodes the document and records where it starts.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	type plain Document
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = value.Line
	return nil
}

// Entry is one item of a fragment file: either a Document or a reference to a preset by name.
type Entry struct {
	Preset   string
	Document *Document
	// Index is the item's position in the file.
	Index int
	// Line is the line the item starts on.
	Line int
}

// ParseFile decodes a fragment file. The file holds either a single fragment mapping or a sequence whose
// items are fragment mappings or preset names. An empty file yields no entries.
// source is used to locate errors (typically the file path).
func ParseFile(data []byte, source string) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &validation.MalformedFragmentError{Fragment: source, Message: err.Error(), Source: source}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	top := root.Content[0]
	switch top.Kind {
	case yaml.MappingNode:
		doc, err := decodeDocument(top, 0, source)
		if err != nil {
			return nil, err
		}
		return []Entry{{Document: doc, Index: 0, Line: top.Line}}, nil
	case yaml.SequenceNode:
		entries := make([]Entry, 0, len(top.Content))
		for i, item := range top.Content {
			switch {
			case item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str":
				entries = append(entries, Entry{Preset: item.Value, Index: i, Line: item.Line})
			case item.Kind == yaml.MappingNode:
				doc, err := decodeDocument(item, i, source)
				if err != nil {
					return nil, err
				}
				entries = append(entries, Entry{Document: doc, Index: i, Line: item.Line})
			default:
				return nil, validation.NewMalformedFragmentError(fmt.Sprintf("#%d", i), "", "must be a fragment mapping or a preset name").
					WithSource(locate(source, item.Line))
			}
		}
		return entries, nil
	default:
		return nil, validation.NewMalformedFragmentError("#0", "", "file must hold a fragment mapping or a list of fragments").
			WithSource(locate(source, top.Line))
	}
}

func decodeDocument(node *yaml.Node, index int, source string) (*Document, error) {
	var doc Document
	if err := node.Decode(&doc); err != nil {
		return nil, validation.NewMalformedFragmentError(fmt.Sprintf("#%d", index), "", "%s", err.Error()).
			WithSource(locate(source, node.Line))
	}
	return &doc, nil
}

// Build converts the document into a Fragment for env. identity names the fragment in errors when the
// document has no name of its own; source locates it in its file.
func (d *Document) Build(env Environment, identity, source string) (*Fragment, error) {
	name := d.Name
	if name == "" {
		name = identity
	}

	f := New(name)
	f.Files = append(f.Files, d.Files...)
	f.Ignores = append(f.Ignores, d.Ignores...)
	f.Plugins = append(f.Plugins, d.Plugins...)

	for _, setName := range d.GlobalSets {
		symbols, ok := globals.Lookup(setName)
		if !ok {
			return nil, validation.NewMalformedFragmentError(name, "global_sets", "unknown global set %q", setName).
				WithSource(locate(source, d.Line))
		}
		for _, s := range symbols {
			access := AccessReadonly
			if s.Writable {
				access = AccessWritable
			}
			f.Globals.Set(s.Name, access)
		}
	}

	for globalName, node := range d.Globals.All() {
		var raw any
		if err := node.Decode(&raw); err != nil {
			return nil, validation.NewMalformedFragmentError(name, "globals."+globalName, "%s", err.Error()).
				WithSource(locate(source, node.Line))
		}
		access, err := ParseAccess(raw)
		if err != nil {
			return nil, validation.NewMalformedFragmentError(name, "globals."+globalName, "%s", err.Error()).
				WithSource(locate(source, node.Line))
		}
		f.Globals.Set(globalName, access)
	}

	sequencedmap.Merge(f.ParserOptions, d.ParserOptions)

	for ruleName, node := range d.Rules.All() {
		entry, err := buildRule(&node, env)
		if err != nil {
			return nil, validation.NewMalformedRuleError(name, ruleName, "%s", err.Error()).
				WithSource(locate(source, node.Line))
		}
		f.Rules.Set(ruleName, entry)
	}

	return f, nil
}

// buildRule decodes one rule value: a bare severity, a [severity, ...options] list, or a mode dependent
// mapping {production: <severity>, development: <severity>, options: [...]}.
func buildRule(node *yaml.Node, env Environment) (RuleEntry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		sev, err := decodeSeverity(node)
		if err != nil {
			return RuleEntry{}, err
		}
		return RuleEntry{Severity: sev}, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return RuleEntry{}, fmt.Errorf("rule list is empty, expected a severity first")
		}
		sev, err := decodeSeverity(node.Content[0])
		if err != nil {
			return RuleEntry{}, err
		}
		options, err := decodeOptions(node.Content[1:])
		if err != nil {
			return RuleEntry{}, err
		}
		return RuleEntry{Severity: sev, Options: options}, nil
	case yaml.MappingNode:
		return buildModeRule(node, env)
	default:
		return RuleEntry{}, fmt.Errorf("rule value must be a severity, a [severity, ...options] list or a {production, development} mapping")
	}
}

func buildModeRule(node *yaml.Node, env Environment) (RuleEntry, error) {
	var production, development *validation.Severity
	var options []any

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "production", "development":
			sev, err := decodeSeverity(value)
			if err != nil {
				return RuleEntry{}, fmt.Errorf("%s: %w", key, err)
			}
			if key == "production" {
				production = &sev
			} else {
				development = &sev
			}
		case "options":
			if value.Kind != yaml.SequenceNode {
				return RuleEntry{}, fmt.Errorf("options must be a list")
			}
			var err error
			options, err = decodeOptions(value.Content)
			if err != nil {
				return RuleEntry{}, err
			}
		default:
			return RuleEntry{}, fmt.Errorf("unexpected key %q, expected production, development or options", key)
		}
	}

	if production == nil || development == nil {
		return RuleEntry{}, fmt.Errorf("mode dependent rule needs both production and development severities")
	}

	return RuleEntry{Severity: env.Select(*production, *development), Options: options}, nil
}

func decodeSeverity(node *yaml.Node) (validation.Severity, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return "", err
	}
	return validation.ParseSeverity(raw)
}

func decodeOptions(nodes []*yaml.Node) ([]any, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	options := make([]any, 0, len(nodes))
	for _, n := range nodes {
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		options = append(options, v)
	}
	return options, nil
}

func locate(source string, line int) string {
	if source == "" || line <= 0 {
		return source
	}
	return fmt.Sprintf("%s:%d", source, line)
}
