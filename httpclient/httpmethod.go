// httpclient/httpmethod.go
package httpclient

import (
	"fmt"
	"net/http"
	"strings"
)

// Verb is an explorer request verb. It is an HTTP method, or GET_BINARY for downloads such as photos.
type Verb string

const (
	VerbGet    Verb = http.MethodGet
	VerbPost   Verb = http.MethodPost
	VerbPatch  Verb = http.MethodPatch
	VerbPut    Verb = http.MethodPut
	VerbDelete Verb = http.MethodDelete

	// VerbGetBinary is a GET whose response is kept as raw bytes and asked for as an image or stream.
	VerbGetBinary Verb = "GET_BINARY"
)

var supportedVerbs = []Verb{VerbGet, VerbPost, VerbPatch, VerbPut, VerbDelete, VerbGetBinary}

// ParseVerb upper-cases s and checks it against the supported verbs.
func ParseVerb(s string) (Verb, error) {
	verb := Verb(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range supportedVerbs {
		if v == verb {
			return verb, nil
		}
	}
	return "", fmt.Errorf("unsupported verb: %q", s)
}

// Method returns the HTTP method sent on the wire.
func (v Verb) Method() string {
	if v == VerbGetBinary {
		return http.MethodGet
	}
	return string(v)
}

// HasBody reports whether the explorer shows a request body editor for the verb.
func (v Verb) HasBody() bool {
	return v == VerbPost || v == VerbPatch || v == VerbPut
}

/* Ref: https://www.rfc-editor.org/rfc/rfc7231#section-8.1.3

+---------+------+------------+
| Method  | Safe | Idempotent |
+---------+------+------------+
| CONNECT | no   | no         |
| DELETE  | no   | yes        |
| GET     | yes  | yes        |
| HEAD    | yes  | yes        |
| OPTIONS | yes  | yes        |
| POST    | no   | no         |
| PUT     | no   | yes        |
| TRACE   | yes  | yes        |
+---------+------+------------+
*/

// IsIdempotentHTTPMethod checks if the given HTTP method is idempotent.
func IsIdempotentHTTPMethod(method string) bool {
	idempotentHTTPMethods := map[string]bool{
		http.MethodGet:     true,
		http.MethodPut:     true,
		http.MethodDelete:  true,
		http.MethodHead:    true,
		http.MethodOptions: true,
		http.MethodTrace:   true,
	}

	return idempotentHTTPMethods[method]
}

// IsNonIdempotentHTTPMethod checks if the given HTTP method is non-idempotent.
func IsNonIdempotentHTTPMethod(method string) bool {
	nonIdempotentHTTPMethods := map[string]bool{
		http.MethodPost:    true,
		http.MethodPatch:   true,
		http.MethodConnect: true,
	}

	return nonIdempotentHTTPMethods[method]
}
