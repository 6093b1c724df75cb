package document

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "colon becomes underscore",
			input:    "Day 1: Hello",
			expected: "Day 1_ Hello",
		},
		{
			name:     "all reserved characters replaced",
			input:    `A/B\C:D*E?F"G<H>I|J`,
			expected: "A_B_C_D_E_F_G_H_I_J",
		},
		{
			name:     "control characters replaced",
			input:    "tab\there",
			expected: "tab_here",
		},
		{
			name:     "surrounding whitespace and dots trimmed",
			input:    " .hidden. ",
			expected: "hidden",
		},
		{
			name:     "underscore runs collapse",
			input:    "a///b",
			expected: "a_b",
		},
		{
			name:     "existing underscores collapse with replacements",
			input:    "a__b?c",
			expected: "a_b_c",
		},
		{
			name:     "multibyte text kept intact",
			input:    "第 1 天：環境建置",
			expected: "第 1 天：環境建置",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestSanitizeName_TruncatesLongNames(t *testing.T) {
	got := SanitizeName(strings.Repeat("x", 250))
	assert.Equal(t, 200, len(got))

	// Multibyte names are capped by character count, not byte count.
	got = SanitizeName(strings.Repeat("字", 250))
	assert.Equal(t, 200, utf8.RuneCountInString(got))
}
