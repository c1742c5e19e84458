// headers/editor.go
package headers

import (
	"regexp"
	"strings"
)

// DefaultRequestHeaders is the text the request header editor starts with.
const DefaultRequestHeaders = "Content-Type: application/json"

var (
	headerLine    = regexp.MustCompile(`^\s*"?([^":]*)"?\s*:\s*"?([^"]*)"?\s*$`)
	trailingComma = regexp.MustCompile(`,\s*$`)
	leadingSpace  = regexp.MustCompile(`^\s+`)
)

// ParseRequestHeaders reads the request header editor, one "Name: value" pair per line. Quotes around
// names and values are tolerated, so JSON-ish input such as `"Prefer": "return=minimal",` works too.
// Lines that do not look like a header are skipped; a later line wins over an earlier one.
func ParseRequestHeaders(text string) map[string]string {
	text = leadingSpace.ReplaceAllString(text, "")
	text = trailingComma.ReplaceAllString(text, "")

	parsed := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		match := headerLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}
		parsed[name] = strings.TrimSpace(match[2])
	}
	return parsed
}
