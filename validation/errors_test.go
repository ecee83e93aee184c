package validation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/speakeasy-api/lintconfig/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedFragmentError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *validation.MalformedFragmentError
		expected string
	}{
		{
			name:     "rule error",
			err:      validation.NewMalformedRuleError("rules", "no-var", "severity %q is not one of off, warn, error", "maybe"),
			expected: `malformed fragment "rules": rule "no-var": severity "maybe" is not one of off, warn, error`,
		},
		{
			name:     "field error",
			err:      validation.NewMalformedFragmentError("#1", "globals.window", "unknown access mode %q", "sometimes"),
			expected: `malformed fragment "#1": field "globals.window": unknown access mode "sometimes"`,
		},
		{
			name:     "with source",
			err:      validation.NewMalformedFragmentError("language", "rules", "must be a mapping").WithSource("lint.yaml:4"),
			expected: `lint.yaml:4: malformed fragment "language": field "rules": must be a mapping`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestMalformedFragmentError_Is(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolving: %w", validation.NewMalformedRuleError("rules", "no-var", "bad"))

	require.ErrorIs(t, err, validation.ErrMalformedFragment, "wrapped error should match the sentinel")

	var mErr *validation.MalformedFragmentError
	require.True(t, errors.As(err, &mErr), "should unwrap to the concrete error")
	assert.Equal(t, "no-var", mErr.Rule)
	assert.Equal(t, "rules.no-var", mErr.Field)
}

func TestMalformedFragmentError_WithSource_DoesNotMutate(t *testing.T) {
	t.Parallel()

	orig := validation.NewMalformedFragmentError("a", "rules", "bad")
	located := orig.WithSource("x.yaml:1")

	assert.Empty(t, orig.Source, "original should be untouched")
	assert.Equal(t, "x.yaml:1", located.Source)
}
