package client

import (
	"net/http"
	"time"
)

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.  Use it to install a
// custom transport or a tighter timeout than the SDK default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger routes the SDK's request logging through the given logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRetryMax bounds how many times a request is retried after a
// retryable failure.  Negative values are ignored; zero disables retries.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retryMax = n
		}
	}
}

// WithRetryWait sets the backoff window between retries.  min must be
// positive; max takes effect only when it is at least min.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		if min <= 0 {
			return
		}
		c.retryWaitMin = min
		if max >= min {
			c.retryWaitMax = max
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
// An empty string keeps the default juris-go-sdk agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

//Personal.AI order the ending
