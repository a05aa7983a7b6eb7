package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gorkem/vscode-github-issue-notebooks/parser"
)

func TestFormatVarsIsSorted(t *testing.T) {
	lines := formatVars(map[string]string{
		"${zeta}":  "label:z",
		"${alpha}": "label:a",
		"${mid}":   "label:m",
	})
	assert.Equal(t, []string{
		"${alpha} = label:a",
		"${mid} = label:m",
		"${zeta} = label:z",
	}, lines)

	assert.Empty(t, formatVars(nil))
}

func TestCaretLineAlignment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		diag     parser.Diagnostic
		expected string
	}{
		{
			name:     "Zero width gap at end",
			input:    "label:",
			diag:     parser.Diagnostic{Start: 6, End: 6, Message: "expected value"},
			expected: "      ^ expected value",
		},
		{
			name:     "Wide span",
			input:    "a ${ghost}",
			diag:     parser.Diagnostic{Start: 2, End: 10, Message: "undefined variable ${ghost}"},
			expected: "  ^^^^^^^^ undefined variable ${ghost}",
		},
		{
			name: "Multibyte prefix counts display width, not bytes",
			// The emoji is four bytes but two columns wide.
			input:    "🐛 label:",
			diag:     parser.Diagnostic{Start: 11, End: 11, Message: "expected value"},
			expected: "         ^ expected value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, caretLine(tt.input, tt.diag))
		})
	}
}
