package fragment

import (
	"encoding/json"

	"github.com/speakeasy-api/lintconfig/validation"
)

// RuleEntry is a rule's severity paired with its options.
// Options are positional payloads owned by the rule-checking engine; they are carried through untouched.
type RuleEntry struct {
	Severity validation.Severity
	Options  []any
}

// Clone returns a deep copy of the entry; nested option maps and lists are copied too.
func (e RuleEntry) Clone() RuleEntry {
	return RuleEntry{Severity: e.Severity, Options: cloneOptions(e.Options)}
}

// Normalized returns the entry as it is stored in a resolved configuration: a rule that is off carries no options.
func (e RuleEntry) Normalized() RuleEntry {
	if e.Severity == validation.SeverityOff {
		return RuleEntry{Severity: validation.SeverityOff}
	}
	return e.Clone()
}

// MarshalYAML writes the entry in its short form: the bare severity when there are no options,
// otherwise a list headed by the severity.
func (e RuleEntry) MarshalYAML() (any, error) {
	if len(e.Options) == 0 {
		return string(e.Severity), nil
	}
	return append([]any{string(e.Severity)}, e.Options...), nil
}

// MarshalJSON writes the entry in the same short form as MarshalYAML.
func (e RuleEntry) MarshalJSON() ([]byte, error) {
	v, _ := e.MarshalYAML()
	return json.Marshal(v)
}
