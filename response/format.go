// response/format.go
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

const jsonIndent = "    "

// FormatJSON re-indents a JSON body with four spaces.
func FormatJSON(body []byte) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", jsonIndent); err != nil {
		return "", fmt.Errorf("failed to indent JSON response: %w", err)
	}
	return out.String(), nil
}

var (
	xmlTagBreak    = regexp.MustCompile(`(>)\s*(<)(/*)`)
	xmlTrailingWS  = regexp.MustCompile(` *(.*) +\n`)
	xmlContentLine = regexp.MustCompile(`(<.+>)(.+\n)`)

	xmlSingleTag  = regexp.MustCompile(`<.+/>`)
	xmlClosingTag = regexp.MustCompile(`</.+>`)
	xmlOpeningTag = regexp.MustCompile(`<[^!].*>`)
)

type xmlLineType string

const (
	xmlSingle  xmlLineType = "single"
	xmlClosing xmlLineType = "closing"
	xmlOpening xmlLineType = "opening"
	xmlOther   xmlLineType = "other"
)

// xmlIndentTransitions gives the indent change when a line of one type follows another.
var xmlIndentTransitions = map[[2]xmlLineType]int{
	{xmlSingle, xmlSingle}:   0,
	{xmlSingle, xmlClosing}:  -1,
	{xmlSingle, xmlOpening}:  0,
	{xmlSingle, xmlOther}:    0,
	{xmlClosing, xmlSingle}:  0,
	{xmlClosing, xmlClosing}: -1,
	{xmlClosing, xmlOpening}: 0,
	{xmlClosing, xmlOther}:   0,
	{xmlOpening, xmlSingle}:  1,
	{xmlOpening, xmlClosing}: 0,
	{xmlOpening, xmlOpening}: 1,
	{xmlOpening, xmlOther}:   1,
	{xmlOther, xmlSingle}:    0,
	{xmlOther, xmlClosing}:   -1,
	{xmlOther, xmlOpening}:   0,
	{xmlOther, xmlOther}:     0,
}

func classifyXMLLine(line string) xmlLineType {
	switch {
	case xmlSingleTag.MatchString(line):
		return xmlSingle
	case xmlClosingTag.MatchString(line):
		return xmlClosing
	case xmlOpeningTag.MatchString(line):
		return xmlOpening
	default:
		return xmlOther
	}
}

// FormatXML puts one tag per line and indents with tabs. It is a line based formatter, not a
// parser, so it also copes with fragments that would not parse.
func FormatXML(xml string) string {
	xml = xmlTagBreak.ReplaceAllString(xml, "${1}\n${2}${3}")
	xml = xmlTrailingWS.ReplaceAllString(xml, "${1}\n")
	xml = xmlContentLine.ReplaceAllString(xml, "${1}\n${2}")

	var formatted strings.Builder
	indent := 0
	lastType := xmlOther

	for _, line := range strings.Split(xml, "\n") {
		lineType := classifyXMLLine(line)
		transition := [2]xmlLineType{lastType, lineType}
		lastType = lineType

		indent += xmlIndentTransitions[transition]
		padding := ""
		if indent > 0 {
			padding = strings.Repeat("\t", indent)
		}

		// An opening tag directly followed by its closing tag stays on one line.
		if transition == [2]xmlLineType{xmlOpening, xmlClosing} && formatted.Len() > 0 {
			current := strings.TrimSuffix(formatted.String(), "\n")
			formatted.Reset()
			formatted.WriteString(current)
			formatted.WriteString(line)
			formatted.WriteString("\n")
			continue
		}
		formatted.WriteString(padding)
		formatted.WriteString(line)
		formatted.WriteString("\n")
	}

	return formatted.String()
}

// StatusCodeHeader is the pseudo header appended to the response header listing.
const StatusCodeHeader = "Status Code"

// HeadersToString renders response headers as "Name: value" lines, sorted by name, followed by
// the status code. Multiple values are joined with ", ".
func HeadersToString(h http.Header, status int) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(h[name], ", "))
	}
	fmt.Fprintf(&b, "%s: %d\n", StatusCodeHeader, status)
	return b.String()
}
