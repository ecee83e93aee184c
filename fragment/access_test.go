package fragment_test

import (
	"testing"

	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccess_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    any
		expected fragment.Access
	}{
		{input: "readonly", expected: fragment.AccessReadonly},
		{input: "readable", expected: fragment.AccessReadonly},
		{input: false, expected: fragment.AccessReadonly},
		{input: "writable", expected: fragment.AccessWritable},
		{input: "writeable", expected: fragment.AccessWritable},
		{input: true, expected: fragment.AccessWritable},
		{input: "off", expected: fragment.AccessOff},
		{input: fragment.AccessWritable, expected: fragment.AccessWritable},
	}

	for _, tt := range tests {
		actual, err := fragment.ParseAccess(tt.input)
		require.NoError(t, err, "input %v", tt.input)
		assert.Equal(t, tt.expected, actual, "input %v", tt.input)
	}
}

func TestParseAccess_Error(t *testing.T) {
	t.Parallel()

	for _, input := range []any{"sometimes", 1, nil, fragment.Access("bogus")} {
		_, err := fragment.ParseAccess(input)
		assert.Error(t, err, "input %v", input)
	}
}
