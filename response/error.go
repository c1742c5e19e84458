// response/error.go
// This file turns unsuccessful Graph responses into a structured APIError.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/deploymenttheory/go-graph-explorer/logger"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// APIError represents an api error response.
type APIError struct {
	StatusCode      int    `json:"status_code"`                 // HTTP status code
	Method          string `json:"method"`                      // HTTP method used for the request
	URL             string `json:"url"`                         // The URL of the HTTP request
	Code            string `json:"code,omitempty"`              // Graph error code, e.g. Request_ResourceNotFound
	Message         string `json:"message"`                     // Summary of the error
	RequestID       string `json:"request_id,omitempty"`        // innerError.request-id
	ClientRequestID string `json:"client_request_id,omitempty"` // innerError.client-request-id
	RawResponse     string `json:"raw_response"`                // Raw response body for debugging
}

// Error returns a string representation of the APIError, making it compatible with the error interface.
func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("API Error: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, message)
	}
	return fmt.Sprintf("API Error: StatusCode=%d, Message=%s", e.StatusCode, message)
}

// graphErrorBody is the error envelope Graph returns for JSON requests.
type graphErrorBody struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError struct {
			RequestID       string `json:"request-id"`
			ClientRequestID string `json:"client-request-id"`
		} `json:"innerError"`
	} `json:"error"`
}

// HandleAPIErrorResponse builds an APIError from an unsuccessful response whose body has already
// been read, and logs it.
func HandleAPIErrorResponse(resp *http.Response, body []byte, log logger.Logger) *APIError {
	apiError := &APIError{
		StatusCode: resp.StatusCode,
		Message:    "API Error Response",
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		if resp.Request.URL != nil {
			apiError.URL = resp.Request.URL.String()
		}
	}

	switch ContentType(resp.Header) {
	case "application/json":
		parseJSONResponse(body, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(body, apiError)
	case "text/html":
		parseHTMLResponse(body, apiError)
	case "text/plain":
		parseTextResponse(body, apiError)
	default:
		apiError.RawResponse = string(body)
		apiError.Message = "Unknown content type error"
	}

	if log != nil {
		log.Warn("Graph returned an error response",
			zap.Int("status_code", apiError.StatusCode),
			zap.String("code", apiError.Code),
			zap.String("message", apiError.Message),
			zap.String("request_id", apiError.RequestID),
		)
	}

	return apiError
}

// parseJSONResponse reads the Graph error envelope.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	var envelope graphErrorBody
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return
	}
	apiError.Code = envelope.Error.Code
	apiError.RequestID = envelope.Error.InnerError.RequestID
	apiError.ClientRequestID = envelope.Error.InnerError.ClientRequestID
	if envelope.Error.Message != "" {
		apiError.Message = envelope.Error.Message
	} else {
		apiError.Message = "An unknown error occurred"
	}
}

// parseXMLResponse dynamically parses XML error responses and accumulates potential error messages.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	if code := xmlquery.FindOne(doc, "//*[local-name()='code']"); code != nil {
		apiError.Code = strings.TrimSpace(code.InnerText())
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "Failed to extract error details from XML response"
	}
}

// parseTextResponse updates the APIError structure based on a plain text error response.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	bodyText := string(bodyBytes)
	apiError.RawResponse = bodyText
	apiError.Message = bodyText
}

// parseHTMLResponse concatenates the text of all <p> elements, keeping link targets.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				if c.Type == html.TextNode {
					pContent.WriteString(strings.TrimSpace(c.Data) + " ")
				} else if c.Type == html.ElementNode && c.Data == "a" {
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if finalContent := strings.TrimSpace(pContent.String()); finalContent != "" {
				messages = append(messages, finalContent)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "HTML Error: See 'Raw' field for details."
	}
}
