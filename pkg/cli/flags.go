package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// CommonFlags are shared by every tool.
type CommonFlags struct {
	Config string
	Output string

	Client ClientOptions
}

func RegisterCommonFlags(fs *flag.FlagSet, f *CommonFlags, defaultTimeout time.Duration) {
	fs.StringVar(&f.Config, "config", "", "config file (default $CONVEY_CONFIG)")
	fs.StringVar(&f.Output, "o", "", "output file, - for stdout")

	fs.StringVar(&f.Client.Endpoint, "url", "", "full service endpoint url")
	fs.StringVar(&f.Client.Token, "token", "", "bearer token for the service")
	fs.DurationVar(&f.Client.Timeout, "timeout", 0, fmt.Sprintf("request timeout (default %s)", defaultTimeout))
}

// Visited returns the names of the flags set on the command line.
func Visited(fs *flag.FlagSet) map[string]bool {
	result := map[string]bool{}

	fs.Visit(func(f *flag.Flag) {
		result[f.Name] = true
	})

	return result
}

// Bool picks an explicitly set flag over the configured value.
func Bool(set bool, value bool, configured *bool) *bool {
	if set {
		return &value
	}

	return configured
}

// First returns the first non-empty value.
func First[T comparable](values ...T) T {
	var zero T

	for _, v := range values {
		if v != zero {
			return v
		}
	}

	return zero
}

// Interactive reports whether progress lines can be redrawn on stderr.
func Interactive() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
