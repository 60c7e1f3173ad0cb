package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const EnvConfig = "CONVEY_CONFIG"

type Config struct {
	URL   string
	Token string

	Timeout time.Duration
	Limiter *rate.Limiter

	Speech   SpeechConfig
	Markdown MarkdownConfig
	Readable ReadableConfig
}

type SpeechConfig struct {
	Voice        string `yaml:"voice"`
	ChunkSize    int    `yaml:"chunkSize"`
	Instructions string `yaml:"instructions"`
}

type MarkdownConfig struct {
	GithubFlavored     *bool `yaml:"githubFlavored"`
	PreserveImages     *bool `yaml:"preserveImages"`
	AddTableOfContents *bool `yaml:"addTableOfContents"`
}

type ReadableConfig struct {
	Format string `yaml:"format"`
}

// Load parses path, or the file named by CONVEY_CONFIG when path is empty.
// Without either it returns an empty configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path == "" {
		return &Config{}, nil
	}

	return Parse(path)
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		URL:   file.URL,
		Token: file.Token,

		Speech:   file.Speech,
		Markdown: file.Markdown,
		Readable: file.Readable,
	}

	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)

		if err != nil {
			return nil, err
		}

		if timeout <= 0 {
			return nil, errors.New("timeout must be positive")
		}

		c.Timeout = timeout
	}

	if file.Speech.ChunkSize < 0 {
		return nil, errors.New("speech chunkSize must be positive")
	}

	switch file.Readable.Format {
	case "", "markdown", "html":
	default:
		return nil, errors.New("readable format must be markdown or html")
	}

	c.Limiter = createLimiter(file.Limit)

	return c, nil
}

type configFile struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Timeout string `yaml:"timeout"`
	Limit   *int   `yaml:"limit"`

	Speech   SpeechConfig   `yaml:"speech"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Readable ReadableConfig `yaml:"readable"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
