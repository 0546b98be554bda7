package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/campsite/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text unchanged", "A quiet spot by the river", "A quiet spot by the river"},
		{"strips tags", "<b>Great</b> views", "Great views"},
		{"strips script entirely", `Nice<script>alert("x")</script>`, "Nice"},
		{"strips event handlers", `<img src=x onerror=alert(1)>camp`, "camp"},
		{"trims whitespace", "  spaced out  ", "spaced out"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}
