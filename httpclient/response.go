// httpclient/response.go
package httpclient

import (
	"net/http"
	"time"
)

// Response is a fully read Graph response.
type Response struct {
	Data     []byte
	Header   http.Header
	Status   int
	Duration time.Duration

	raw *http.Response // body already drained and closed
}

// Headers returns a lookup function over the response headers. Names are case-insensitive and a
// missing header yields "".
func (r *Response) Headers() func(name string) string {
	return func(name string) string {
		if r == nil {
			return ""
		}
		return r.Header.Get(name)
	}
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}
