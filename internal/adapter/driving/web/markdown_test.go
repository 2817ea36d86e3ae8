package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDescription_Blank(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t\n"} {
		assert.Equal(t, "", RenderDescription(src))
	}
}

func TestRenderDescription(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "plain text",
			input:    "Register to get access.",
			contains: []string{"<p>Register to get access.</p>"},
		},
		{
			name:     "bold",
			input:    "All fields marked **required** must be filled.",
			contains: []string{"<strong>required</strong>"},
		},
		{
			name:     "single newline is a line break",
			input:    "Line one\nLine two",
			contains: []string{"Line one<br", "Line two</p>"},
		},
		{
			name:     "external link opens in new tab",
			input:    "[terms](https://example.com/terms)",
			contains: []string{`href="https://example.com/terms"`, `target="_blank"`, "terms</a>"},
		},
		{
			name:        "relative link stays in place",
			input:       "[help](/help)",
			contains:    []string{`href="/help"`},
			notContains: []string{"_blank"},
		},
		{
			name:        "raw script is dropped",
			input:       `<script>alert("xss")</script>`,
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "raw inline handler is dropped",
			input:       `Click <a href="#" onclick="steal()">here</a>`,
			contains:    []string{"Click"},
			notContains: []string{"onclick", "steal"},
		},
		{
			name:        "javascript link is neutralized",
			input:       "[x](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:     "gfm strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "list",
			input:    "- one\n- two",
			contains: []string{"<li>one</li>", "<li>two</li>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderDescription(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			for _, bad := range tt.notContains {
				assert.NotContains(t, result, bad)
			}
		})
	}
}
