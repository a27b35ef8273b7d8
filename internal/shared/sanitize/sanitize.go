// Package sanitize strips markup from user-generated text before it is
// persisted to the audit log.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes any HTML from free-text input and trims surrounding
// whitespace. Comments and descriptions are stored plain.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
