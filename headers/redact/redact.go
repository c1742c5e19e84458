// headers/redact/redact.go
package redact

import "net/http"

// sensitiveKeys are compared in canonical header form.
var sensitiveKeys = map[string]bool{
	"Accesstoken":   true,
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[http.CanonicalHeaderKey(key)] {
		return "REDACTED"
	}
	return value
}

// Header returns a copy of h with sensitive values redacted when hideSensitiveData is set.
func Header(hideSensitiveData bool, h http.Header) http.Header {
	redacted := make(http.Header, len(h))
	for name, values := range h {
		copied := make([]string, len(values))
		for i, value := range values {
			copied[i] = RedactSensitiveHeaderData(hideSensitiveData, name, value)
		}
		redacted[name] = copied
	}
	return redacted
}
