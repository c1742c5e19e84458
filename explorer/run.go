// explorer/run.go
package explorer

import (
	"context"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/headers"
	"github.com/deploymenttheory/go-graph-explorer/httpclient"
	"github.com/deploymenttheory/go-graph-explorer/response"
	"go.uber.org/zap"
)

// Dispatcher sends explorer calls. *httpclient.Client implements it.
type Dispatcher interface {
	QueryWithHeaders(verb httpclient.Verb, customHeaders map[string]string) httpclient.QueryFunc
}

// Display is what the explorer shows for a call: the formatted body or image bytes, and the
// response headers with the status code appended.
type Display struct {
	Kind      response.Kind
	MediaType string
	Body      string
	Image     []byte
	Headers   string
	Status    int
	Duration  time.Duration
}

// Run sends the current verb and URL with the headers from the request header editor, formats the
// result for display and re-resolves the entity using the outcome. Graph error responses are
// displayed and also returned as the error. A nil Display means the request never got a response.
func (s *Session) Run(ctx context.Context, dispatcher Dispatcher) (*Display, error) {
	startTime := time.Now()
	customHeaders := headers.ParseRequestHeaders(s.RequestHeaders)

	var body []byte
	if s.SelectedOption.HasBody() && s.RequestBody != "" {
		body = []byte(s.RequestBody)
	}

	resp, err := dispatcher.QueryWithHeaders(s.SelectedOption, customHeaders)(ctx, s.Text, body)
	if resp == nil {
		s.LastCallSucceeded = false
		s.SetEntity(false)
		return nil, err
	}

	display, renderErr := s.render(ctx, dispatcher, customHeaders, resp)
	if err == nil {
		err = renderErr
	}
	display.Duration = time.Since(startTime)

	// An unfollowed 3xx comes back without an error but is not a success.
	s.LastCallSucceeded = err == nil && resp.IsSuccess()
	s.SetEntity(s.LastCallSucceeded)
	return display, err
}

func (s *Session) render(ctx context.Context, dispatcher Dispatcher, customHeaders map[string]string, resp *httpclient.Response) (*Display, error) {
	kind := response.Classify(resp.Header, resp.Data)
	display := &Display{
		Kind:      kind,
		MediaType: response.ContentType(resp.Header),
		Headers:   response.HeadersToString(resp.Header, resp.Status),
		Status:    resp.Status,
	}

	switch kind {
	case response.KindImage:
		binary, err := dispatcher.QueryWithHeaders(httpclient.VerbGetBinary, customHeaders)(ctx, s.Text, nil)
		if binary == nil {
			return display, err
		}
		display.Image = binary.Data
		display.Headers = response.HeadersToString(binary.Header, binary.Status)
		display.Status = binary.Status
		if mediaType := response.ContentType(binary.Header); mediaType != "" {
			display.MediaType = mediaType
		}
		return display, err
	case response.KindXML:
		display.Body = response.FormatXML(string(resp.Data))
	case response.KindJSON:
		formatted, err := response.FormatJSON(resp.Data)
		if err != nil {
			s.Logger.Debug("Response is not valid JSON, showing it as text", zap.Error(err))
			display.Kind = response.KindText
			display.Body = string(resp.Data)
		} else {
			display.Body = formatted
		}
	default:
		display.Body = string(resp.Data)
	}
	return display, nil
}
