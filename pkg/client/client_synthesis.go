package client

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/adrianliechti/convey/pkg/otel"
)

const (
	DefaultVoice     = "nova"
	DefaultChunkSize = 1000
)

type SynthesisService struct {
	Options []RequestOption
}

func NewSynthesisService(opts ...RequestOption) SynthesisService {
	return SynthesisService{
		Options: opts,
	}
}

type SynthesisConfig struct {
	Voice string `json:"voice"`

	// ChunkSize tells the service how many characters to synthesize per
	// segment. The client never splits text itself.
	ChunkSize int `json:"chunkSize"`

	Instructions string `json:"instructions,omitempty"`
}

type SynthesisRequest struct {
	Text string `json:"text"`

	Config SynthesisConfig `json:"config"`
}

// NewSynthesisRequest fills in the default voice and chunk size. Empty
// instructions are left out of the payload entirely.
func NewSynthesisRequest(text string, config SynthesisConfig) SynthesisRequest {
	if config.Voice == "" {
		config.Voice = DefaultVoice
	}

	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}

	return SynthesisRequest{
		Text:   text,
		Config: config,
	}
}

type Synthesis struct {
	ID string

	Path string
	Size int64

	ContentType string
}

// New synthesizes input into the file at path. The file is created or
// truncated only once the service answered with audio.
func (r *SynthesisService) New(ctx context.Context, input SynthesisRequest, path string, opts ...RequestOption) (*Synthesis, error) {
	result, err := r.synthesize(ctx, input, fileSink(path), opts...)

	if err != nil {
		return nil, err
	}

	result.Path = path
	return result, nil
}

// Stream synthesizes input into w.
func (r *SynthesisService) Stream(ctx context.Context, input SynthesisRequest, w io.Writer, opts ...RequestOption) (*Synthesis, error) {
	return r.synthesize(ctx, input, writerSink(w), opts...)
}

func (r *SynthesisService) synthesize(ctx context.Context, input SynthesisRequest, open sink, opts ...RequestOption) (*Synthesis, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	id := newRequestID()
	start := time.Now()

	input = NewSynthesisRequest(input.Text, input.Config)

	ctx, span := otel.StartSpan(ctx, "synthesize",
		otel.String("request.id", id),
		otel.String("voice", input.Config.Voice),
		otel.Int("chunk_size", input.Config.ChunkSize),
	)
	defer span.End()

	var written int64
	var err error

	defer func() {
		observe(ctx, span, "synthesize", id, start, written, err)
	}()

	resp, err := c.send(ctx, c.endpoint("/speech"), id, input)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	written, err = persist(resp, open, c.Progress)

	if err != nil {
		return nil, err
	}

	return &Synthesis{
		ID: id,

		Size:        written,
		ContentType: synthesisContentType,
	}, nil
}

type sink func() (io.WriteCloser, error)

func fileSink(path string) sink {
	return func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	}
}

func writerSink(w io.Writer) sink {
	return func() (io.WriteCloser, error) {
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
