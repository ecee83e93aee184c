package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		commit   string
		date     string
		expected string
	}{
		{name: "unknown build", commit: "none", date: "unknown", expected: "{{printf \"%s\" .Version}}\n"},
		{name: "commit only", commit: "abc1234", date: "", expected: "{{printf \"%s\" .Version}}\nBuild: abc1234\n"},
		{
			name:     "commit and date",
			commit:   "abc1234",
			date:     "2025-01-02T03:04:05Z",
			expected: "{{printf \"%s\" .Version}}\nBuild: abc1234\nBuilt: 2025-01-02T03:04:05Z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, versionTemplate(tt.commit, tt.date))
		})
	}
}
