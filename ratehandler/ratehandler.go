// ratehandler/ratehandler.go
// Package ratehandler works out how long to wait before retrying a throttled or failed Graph call.
// Graph signals throttling with 429 and a Retry-After header; transient 5xx failures fall back to
// exponential backoff with jitter.
package ratehandler

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"go.uber.org/zap"
)

const (
	maxDelay     = 10 * time.Second
	baseDelay    = 100 * time.Millisecond
	jitterFactor = 0.5
	skewBuffer   = 5 * time.Second
)

// CalculateBackoff returns baseDelay * 2^retry, jittered by up to jitterFactor and capped at maxDelay.
func CalculateBackoff(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}

	delay := float64(baseDelay) * math.Pow(2, float64(retry))
	jitter := (rand.Float64() - 0.5) * jitterFactor * 2 * delay
	delay += jitter

	if delay < float64(baseDelay)*(1-jitterFactor) {
		delay = float64(baseDelay) * (1 - jitterFactor)
	}
	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}

	return time.Duration(delay)
}

// ParseRateLimitHeaders reads Retry-After (seconds or HTTP date) and, failing that,
// X-RateLimit-Reset, returning how long to wait. Zero means no usable header was present.
func ParseRateLimitHeaders(resp *http.Response, log logger.Logger) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if date, err := http.ParseTime(retryAfter); err == nil {
			wait := time.Until(date)
			if wait < 0 {
				return 0
			}
			return wait
		}
		log.Debug("Unparseable Retry-After header", zap.String("Retry-After", retryAfter))
	}

	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		if resetHeader := resp.Header.Get("X-RateLimit-Reset"); resetHeader != "" {
			if resetTimeUnix, err := strconv.ParseInt(resetHeader, 10, 64); err == nil {
				wait := time.Until(time.Unix(resetTimeUnix, 0)) + skewBuffer
				if wait < 0 {
					return 0
				}
				return wait
			}
			log.Debug("Unparseable X-RateLimit-Reset header", zap.String("X-RateLimit-Reset", resetHeader))
		}
	}

	return 0
}
