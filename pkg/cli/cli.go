package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/convey/pkg/client"
	"github.com/adrianliechti/convey/pkg/otel"
)

const (
	ExitOK        = 0
	ExitTransport = 1
	ExitService   = 2
	ExitProtocol  = 3
	ExitUsage     = 64
)

type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps the result of a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError

	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	switch client.OutcomeOf(err) {
	case client.OutcomeServiceError:
		return ExitService
	case client.OutcomeProtocolMismatch:
		return ExitProtocol
	default:
		return ExitTransport
	}
}

// Run sets up logging and telemetry, runs fn until it returns or the process
// is interrupted, and exits with the matching status code. fn reports its own
// per-input failures; Run only prints usage errors.
func Run(service string, fn func(ctx context.Context) error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	shutdown, err := otel.Setup(ctx, service)

	if err != nil {
		fmt.Fprintln(os.Stderr, "telemetry disabled:", err)
	}

	err = fn(ctx)
	stop()

	if shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := shutdown(ctx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}

		cancel()
	}

	code := ExitCode(err)

	var reported reportedError

	if code == ExitUsage && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", Describe(err))
	}

	os.Exit(code)
}

// Describe renders err for humans, naming the outcome and the diagnostic.
func Describe(err error) string {
	var usageErr *UsageError

	if errors.As(err, &usageErr) {
		return usageErr.Message
	}

	var serviceErr *client.ServiceError

	if errors.As(err, &serviceErr) {
		return fmt.Sprintf("request failed with status %d: %s", serviceErr.StatusCode, serviceErr.Message)
	}

	var protocolErr *client.ProtocolError

	if errors.As(err, &protocolErr) {
		contentType := protocolErr.ContentType

		if contentType == "" {
			contentType = "none"
		}

		return fmt.Sprintf("unexpected response (content type %s): %s", contentType, protocolErr.Message)
	}

	var transportErr *client.TransportError

	if errors.As(err, &transportErr) {
		if transportErr.Written > 0 {
			return fmt.Sprintf("request failed after %d bytes: %v", transportErr.Written, transportErr.Err)
		}

		return fmt.Sprintf("request failed: %v", transportErr.Err)
	}

	return err.Error()
}

// Each runs fn for every target, printing failures as they happen. The
// returned error is the last failure, or nil when every target succeeded.
func Each(targets []Target, fn func(target Target) error) error {
	var result error

	for _, target := range targets {
		if err := fn(target); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", target.Input, Describe(err))
			result = reportedError{err}
		}
	}

	return result
}

type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}
