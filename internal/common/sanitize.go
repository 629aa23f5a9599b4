package common

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeMessage strips any markup from a message that may echo server
// provided content. The result is safe to render as HTML or plain text.
func SanitizeMessage(message string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(message))
}
