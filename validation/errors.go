package validation

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/lintconfig/errors"
)

// ErrMalformedFragment is matched by every MalformedFragmentError.
const ErrMalformedFragment = errors.Error("malformed fragment")

// MalformedFragmentError reports a configuration fragment that failed its shape check.
// Resolution is aborted as a whole when one is returned; the caller fixes the source and resolves again.
type MalformedFragmentError struct {
	// Fragment identifies the offending fragment, by name when it has one otherwise by position (e.g. "#2").
	Fragment string
	// Field is the path of the invalid field within the fragment (e.g. "rules", "globals.window").
	Field string
	// Rule is the rule name when the problem is in a rule entry.
	Rule string
	// Message describes what is wrong with the field.
	Message string
	// Source optionally locates the fragment in its file (e.g. "lint.yaml:12").
	Source string
}

var _ error = (*MalformedFragmentError)(nil)

// NewMalformedFragmentError creates a MalformedFragmentError with a formatted message.
func NewMalformedFragmentError(fragment, field, format string, args ...any) *MalformedFragmentError {
	return &MalformedFragmentError{
		Fragment: fragment,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewMalformedRuleError creates a MalformedFragmentError for a single rule entry.
func NewMalformedRuleError(fragment, rule, format string, args ...any) *MalformedFragmentError {
	return &MalformedFragmentError{
		Fragment: fragment,
		Field:    "rules." + rule,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *MalformedFragmentError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s %q", ErrMalformedFragment, e.Fragment)
	if e.Rule != "" {
		fmt.Fprintf(&sb, ": rule %q", e.Rule)
	} else if e.Field != "" {
		fmt.Fprintf(&sb, ": field %q", e.Field)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Is makes errors.Is(err, ErrMalformedFragment) hold.
func (e *MalformedFragmentError) Is(target error) bool {
	return target == ErrMalformedFragment
}

// WithSource returns a copy of the error located at source.
func (e *MalformedFragmentError) WithSource(source string) *MalformedFragmentError {
	c := *e
	c.Source = source
	return &c
}
