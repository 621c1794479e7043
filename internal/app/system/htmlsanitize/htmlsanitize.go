// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every tag. Display names and other short strings that come
// in from CSV files or the provider are rendered as plain text, so no markup
// survives them.
var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML from s and trims surrounding whitespace.
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
