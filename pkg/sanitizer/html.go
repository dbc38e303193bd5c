// Package sanitizer turns untrusted backend text into plain text safe to show
// in the UI.
package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxLength caps PlainText output, in runes.
const DefaultMaxLength = 300

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes every tag and returns the remaining text with entities decoded.
func StripHTML(s string) string {
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// PlainText strips HTML, collapses whitespace and truncates to maxLen runes
// (DefaultMaxLength when maxLen <= 0). Proxies and servers often answer
// failures with full HTML pages; this keeps only readable text.
func PlainText(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	text := strings.Join(strings.Fields(StripHTML(s)), " ")
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLen])) + "…"
}
