package client

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adrianliechti/convey/pkg/otel"

	"github.com/google/uuid"
)

const DefaultURL = "http://localhost:8080"

var defaultClient = &http.Client{
	Transport: otel.Transport(http.DefaultTransport),
}

type Client struct {
	Markdown  MarkdownService
	Readable  ReadableService
	Syntheses SynthesisService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append([]RequestOption{WithURL(url)}, opts...)

	return &Client{
		Markdown:  NewMarkdownService(opts...),
		Readable:  NewReadableService(opts...),
		Syntheses: NewSynthesisService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		URL:    DefaultURL,
		Client: defaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Client == nil {
		c.Client = defaultClient
	}

	if c.Timeout > 0 {
		client := *c.Client
		client.Timeout = c.Timeout

		c.Client = &client
	}

	return c
}

func (c *RequestConfig) endpoint(path string) string {
	if c.Endpoint != "" {
		return c.Endpoint
	}

	return strings.TrimRight(c.URL, "/") + path
}

// send posts body as JSON. Every failure before a status line arrives is a
// TransportError.
func (c *RequestConfig) send(ctx context.Context, url, id string, body any) (*http.Response, error) {
	var data bytes.Buffer

	if err := json.NewEncoder(&data).Encode(body); err != nil {
		return nil, &TransportError{Err: err}
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &data)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", id)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	slog.DebugContext(ctx, "sending request", "id", id, "url", url, "size", data.Len())

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

func observe(ctx context.Context, span otel.Span, operation, id string, start time.Time, written int64, err error) {
	outcome := OutcomeOf(err)
	elapsed := time.Since(start)

	span.SetAttributes(
		otel.String("outcome", outcome.String()),
		otel.Int64("bytes", written),
	)

	if err != nil {
		span.RecordError(err)
	}

	otel.Record(ctx, operation, outcome.String(), written, elapsed)

	slog.DebugContext(ctx, "request finished",
		"id", id,
		"operation", operation,
		"outcome", outcome.String(),
		"bytes", written,
		"elapsed", elapsed,
	)
}

func newRequestID() string {
	return uuid.NewString()
}

func Ptr[T any](v T) *T {
	return &v
}
