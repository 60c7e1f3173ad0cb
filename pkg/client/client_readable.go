package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/adrianliechti/convey/pkg/otel"
)

type ReadableService struct {
	Options []RequestOption
}

func NewReadableService(opts ...RequestOption) ReadableService {
	return ReadableService{
		Options: opts,
	}
}

type ReadableRequest struct {
	Text string `json:"text"`
}

// Readable is the input rewritten into the ADHD-friendly Markdown format,
// with the leading characters of key words set in bold.
type Readable struct {
	ID string `json:"-"`

	Text string `json:"processedText"`
}

func (r *ReadableService) New(ctx context.Context, input ReadableRequest, opts ...RequestOption) (*Readable, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	id := newRequestID()
	start := time.Now()

	ctx, span := otel.StartSpan(ctx, "process",
		otel.String("request.id", id),
	)
	defer span.End()

	var result Readable
	var err error

	defer func() {
		observe(ctx, span, "process", id, start, int64(len(result.Text)), err)
	}()

	resp, err := c.send(ctx, c.endpoint("/process-text"), id, input)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if err = decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	if strings.TrimSpace(result.Text) == "" {
		err = &ProtocolError{
			StatusCode:  http.StatusOK,
			ContentType: resp.Header.Get("Content-Type"),

			Message: "response does not contain processedText",
		}

		return nil, err
	}

	result.ID = id
	return &result, nil
}
