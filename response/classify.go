// response/classify.go
package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// Kind is how a response body should be displayed.
type Kind int

const (
	KindText Kind = iota
	KindJSON
	KindXML
	KindHTML
	KindImage
)

// String returns the editor mode name for the kind.
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindXML:
		return "xml"
	case KindHTML:
		return "html"
	case KindImage:
		return "image"
	default:
		return "text"
	}
}

// ContentType returns the response media type without parameters, lower-cased.
func ContentType(h http.Header) string {
	return ParseContentTypeHeader(h.Get("Content-Type")).Type
}

// IsImageResponse reports binary payloads the explorer renders as an image.
func IsImageResponse(h http.Header) bool {
	contentType := ContentType(h)
	return contentType == "application/octet-stream" || strings.HasPrefix(contentType, "image/")
}

// IsHTMLResponse reports HTML or XHTML payloads.
func IsHTMLResponse(h http.Header) bool {
	contentType := ContentType(h)
	return contentType == "text/html" || contentType == "application/xhtml+xml"
}

// IsXMLResponse looks at the body rather than the headers, since XML arrives under many
// different content types ($metadata alone uses application/xml).
func IsXMLResponse(body []byte) bool {
	return bytes.Contains(body, []byte("<?xml"))
}

// IsJSONResponse reports an application/json payload.
func IsJSONResponse(h http.Header) bool {
	return ContentType(h) == "application/json"
}

// Classify picks the display kind: image, then HTML, then XML, then JSON. Bodies with no JSON
// content type that still parse as JSON are treated as JSON.
func Classify(h http.Header, body []byte) Kind {
	switch {
	case IsImageResponse(h):
		return KindImage
	case IsHTMLResponse(h):
		return KindHTML
	case IsXMLResponse(body):
		return KindXML
	case IsJSONResponse(h):
		return KindJSON
	case len(bytes.TrimSpace(body)) > 0 && json.Valid(body):
		return KindJSON
	default:
		return KindText
	}
}
