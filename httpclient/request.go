// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/headers"
	"github.com/deploymenttheory/go-graph-explorer/headers/redact"
	"github.com/deploymenttheory/go-graph-explorer/ratehandler"
	"github.com/deploymenttheory/go-graph-explorer/response"
	"github.com/deploymenttheory/go-graph-explorer/status"
	"go.uber.org/zap"
)

// binaryAccept is sent for VerbGetBinary so Graph streams the raw content.
const binaryAccept = "image/*, application/octet-stream"

// QueryFunc performs one explorer call against an absolute Graph URL. body may be nil.
type QueryFunc func(ctx context.Context, url string, body []byte) (*Response, error)

// Query returns the call function for verb.
func (c *Client) Query(verb Verb) QueryFunc {
	return c.QueryWithHeaders(verb, nil)
}

// QueryWithHeaders is Query with extra request headers, typically parsed from the request header editor.
func (c *Client) QueryWithHeaders(verb Verb, customHeaders map[string]string) QueryFunc {
	return func(ctx context.Context, url string, body []byte) (*Response, error) {
		return c.DoRequest(ctx, verb, url, body, customHeaders)
	}
}

// DoRequest sends the request and reads the whole response. Idempotent verbs are retried on throttling
// and transient server errors within MaxRetryAttempts and TotalRetryDuration; POST and PATCH are sent once.
//
// A response with a status of 400 or above is returned together with a *response.APIError so the caller
// can still display the body and headers. Transport failures return a nil Response.
func (c *Client) DoRequest(ctx context.Context, verb Verb, endpoint string, body []byte, customHeaders map[string]string) (*Response, error) {
	method := verb.Method()

	if IsIdempotentHTTPMethod(method) {
		return c.executeRequestWithRetries(ctx, verb, endpoint, body, customHeaders)
	} else if IsNonIdempotentHTTPMethod(method) {
		return c.executeRequest(ctx, verb, endpoint, body, customHeaders)
	}
	return nil, c.Logger.Error("HTTP method not supported", zap.String("method", method))
}

// executeRequestWithRetries executes an idempotent request, waiting between attempts for the Retry-After
// Graph sends with a 429, or an exponential backoff with jitter for other retryable statuses.
func (c *Client) executeRequestWithRetries(ctx context.Context, verb Verb, endpoint string, body []byte, customHeaders map[string]string) (*Response, error) {
	log := c.Logger
	method := verb.Method()
	totalRetryDeadline := time.Now().Add(c.config.TotalRetryDuration)

	var resp *Response
	var retryCount int

	log.Debug("Executing request with retries", zap.String("method", method), zap.String("endpoint", endpoint))

	for {
		res, err := c.doRequest(ctx, verb, endpoint, body, customHeaders)
		if err != nil {
			return nil, err
		}
		resp = res

		if resp.Status < http.StatusBadRequest {
			return resp, nil
		}

		if status.IsNonRetryableStatusCode(resp.raw) || !status.IsRetryableStatusCode(resp.Status) {
			log.Warn("Non-retryable error received", zap.Int("status_code", resp.Status), zap.String("status_message", status.TranslateStatusCode(resp.raw)))
			break
		}

		retryCount++
		if retryCount > c.config.MaxRetryAttempts {
			log.Warn("Max retry attempts reached", zap.String("method", method), zap.String("endpoint", endpoint))
			break
		}

		waitDuration := ratehandler.ParseRateLimitHeaders(resp.raw, log)
		if waitDuration <= 0 {
			waitDuration = ratehandler.CalculateBackoff(retryCount)
		} else if status.IsRateLimitError(resp.raw) {
			log.LogRateLimiting("rate_limited", method, endpoint, resp.Header.Get("Retry-After"), waitDuration)
		}

		if time.Now().Add(waitDuration).After(totalRetryDeadline) {
			log.Warn("Total retry duration exceeded", zap.String("method", method), zap.String("endpoint", endpoint))
			break
		}

		log.LogRetryAttempt("retry", method, endpoint, retryCount, retryReason(resp), waitDuration, nil)
		if err := sleepContext(ctx, waitDuration); err != nil {
			return resp, err
		}
	}

	return resp, c.handleErrorResponse(method, endpoint, resp)
}

// retryReason names why a response is being retried for the retry log.
func retryReason(resp *Response) string {
	switch {
	case status.IsRateLimitError(resp.raw):
		return "throttled: " + status.TranslateStatusCode(resp.raw)
	case status.IsTransientError(resp.raw):
		return "transient server error: " + status.TranslateStatusCode(resp.raw)
	default:
		return status.TranslateStatusCode(resp.raw)
	}
}

// executeRequest sends a non-idempotent request exactly once.
func (c *Client) executeRequest(ctx context.Context, verb Verb, endpoint string, body []byte, customHeaders map[string]string) (*Response, error) {
	log := c.Logger
	method := verb.Method()

	log.Debug("Executing request without retries", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.doRequest(ctx, verb, endpoint, body, customHeaders)
	if err != nil {
		return nil, err
	}

	if resp.Status < http.StatusBadRequest {
		return resp, nil
	}
	return resp, c.handleErrorResponse(method, endpoint, resp)
}

// handleErrorResponse parses the Graph error body and logs it.
func (c *Client) handleErrorResponse(method, endpoint string, resp *Response) error {
	apiErr := response.HandleAPIErrorResponse(resp.raw, resp.Data, c.Logger)
	c.Logger.LogError("request_error", method, endpoint, resp.Status, status.TranslateStatusCode(resp.raw), apiErr, apiErr.RawResponse)
	return apiErr
}

func (c *Client) doRequest(ctx context.Context, verb Verb, endpoint string, body []byte, customHeaders map[string]string) (*Response, error) {
	log := c.Logger
	method := verb.Method()

	if c.redirects != nil {
		endpoint = c.redirects.ResolvePermanentRedirect(endpoint)
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request for %s: %w", method, endpoint, err)
	}

	headerHandler := headers.NewHeaderHandler(req, log, c.APIHandler, c.token())
	headerHandler.SetRequestHeaders(endpoint)
	if verb == VerbGetBinary {
		headerHandler.SetAccept(binaryAccept)
	}
	if reader == nil {
		req.Header.Del("Content-Type")
	}
	headerHandler.SetCustomHeaders(customHeaders)
	requestID := headerHandler.SetClientRequestID()
	headerHandler.LogHeaders(c.config.HideSensitiveData)

	log.LogRequestStart("request_start", requestID, method, endpoint, redact.Header(c.config.HideSensitiveData, req.Header))

	startTime := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		log.LogError("request_failed", method, endpoint, 0, "", err, "")
		return nil, fmt.Errorf("failed to send %s request to %s: %w", method, endpoint, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", endpoint, err)
	}
	duration := time.Since(startTime)

	log.LogRequestEnd("request_end", method, endpoint, httpResp.StatusCode, duration)
	if status.IsRedirectStatusCode(httpResp.StatusCode) {
		log.Info("Redirect not followed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status_code", httpResp.StatusCode),
			zap.String("location", httpResp.Header.Get("Location")),
		)
	}
	headers.CheckDeprecationHeader(httpResp, log)

	return &Response{
		Data:     data,
		Header:   httpResp.Header,
		Status:   httpResp.StatusCode,
		Duration: duration,
		raw:      httpResp,
	}, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
