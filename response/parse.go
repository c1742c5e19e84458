// response/parse.go
package response

import "strings"

// MediaType is a parsed Content-Type value. Type is lower-cased; parameter names keep their case
// since Graph sends odata.metadata and IEEE754Compatible verbatim.
type MediaType struct {
	Type   string
	Params map[string]string
}

// ParseContentTypeHeader splits a Content-Type header into its media type and parameters.
func ParseContentTypeHeader(header string) MediaType {
	parts := strings.Split(header, ";")
	media := MediaType{
		Type:   strings.ToLower(strings.TrimSpace(parts[0])),
		Params: make(map[string]string),
	}

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		media.Params[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), "\"")
	}
	return media
}
