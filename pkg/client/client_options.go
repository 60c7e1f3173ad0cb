package client

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type RequestConfig struct {
	URL      string
	Endpoint string

	Token string

	Client  *http.Client
	Timeout time.Duration

	Limiter  *rate.Limiter
	Progress func(written int64)
}

type RequestOption func(*RequestConfig)

// WithURL sets the base url of the service; each service appends its own path.
func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

// WithEndpoint sets the full url of a single operation, bypassing the service path.
func WithEndpoint(url string) RequestOption {
	return func(c *RequestConfig) {
		c.Endpoint = url
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func WithTimeout(timeout time.Duration) RequestOption {
	return func(c *RequestConfig) {
		c.Timeout = timeout
	}
}

func WithLimiter(limiter *rate.Limiter) RequestOption {
	return func(c *RequestConfig) {
		c.Limiter = limiter
	}
}

// WithProgress registers a callback invoked after every chunk written to a
// synthesis destination with the running byte count.
func WithProgress(fn func(written int64)) RequestOption {
	return func(c *RequestConfig) {
		c.Progress = fn
	}
}
