package client

import (
	"context"
	"time"

	"github.com/adrianliechti/convey/pkg/otel"
)

type MarkdownService struct {
	Options []RequestOption
}

func NewMarkdownService(opts ...RequestOption) MarkdownService {
	return MarkdownService{
		Options: opts,
	}
}

type MarkdownOptions struct {
	PreserveImages     *bool `json:"preserveImages,omitempty"`
	AddTableOfContents *bool `json:"addTableOfContents,omitempty"`

	GithubFlavored *bool `json:"githubFlavored,omitempty"`
}

type MarkdownRequest struct {
	HTML string `json:"html"`

	Options *MarkdownOptions `json:"options,omitempty"`
}

// Markdown is the converted document. Success is false when the service
// could only convert part of the input; Message then explains why.
type Markdown struct {
	ID string `json:"-"`

	Text string `json:"markdown"`

	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (r *MarkdownService) New(ctx context.Context, input MarkdownRequest, opts ...RequestOption) (*Markdown, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	id := newRequestID()
	start := time.Now()

	ctx, span := otel.StartSpan(ctx, "convert",
		otel.String("request.id", id),
	)
	defer span.End()

	var result Markdown
	var err error

	defer func() {
		observe(ctx, span, "convert", id, start, int64(len(result.Text)), err)
	}()

	resp, err := c.send(ctx, c.endpoint("/convert/html-to-markdown"), id, input)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if err = decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	result.ID = id
	return &result, nil
}
