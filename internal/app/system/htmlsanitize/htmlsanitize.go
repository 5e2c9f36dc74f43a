// Package htmlsanitize cleans user-entered free text before it is sent to the
// external API. Dana descriptions and family addresses are plain text, so
// markup is stripped rather than allowed through.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	strict *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	once.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// PlainText removes all markup from s and trims surrounding space. Entities
// are decoded again so "Rice & curry" survives unchanged.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(policy().Sanitize(s)))
}
