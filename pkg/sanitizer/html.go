// Package sanitizer strips HTML from user-supplied text before it is
// persisted. Listing titles, descriptions and review bodies are plain
// text in this application, so everything that looks like markup goes.
package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once
)

// StripHTML removes all HTML elements and attributes, returning plain
// text with surrounding whitespace trimmed.
func StripHTML(s string) string {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
