package cli

import (
	"time"

	"github.com/adrianliechti/convey/config"
	"github.com/adrianliechti/convey/pkg/client"
)

type ClientOptions struct {
	// Endpoint is the full url of the operation, overriding the configured base url.
	Endpoint string

	Token   string
	Timeout time.Duration
}

// NewClient combines flags, configuration file and the tool's default
// timeout, in that order of precedence.
func NewClient(cfg *config.Config, opts ClientOptions, defaultTimeout time.Duration) *client.Client {
	url := cfg.URL

	if url == "" {
		url = client.DefaultURL
	}

	token := opts.Token

	if token == "" {
		token = cfg.Token
	}

	timeout := opts.Timeout

	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	options := []client.RequestOption{
		client.WithTimeout(timeout),
	}

	if opts.Endpoint != "" {
		options = append(options, client.WithEndpoint(opts.Endpoint))
	}

	if token != "" {
		options = append(options, client.WithToken(token))
	}

	if cfg.Limiter != nil {
		options = append(options, client.WithLimiter(cfg.Limiter))
	}

	return client.New(url, options...)
}
