package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	maxDiagnosticBytes = 64 << 10
	maxDiagnosticChars = 500
)

// Outcome classifies the single result of one remote operation.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeServiceError
	OutcomeProtocolMismatch
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeProtocolMismatch:
		return "protocol_mismatch"
	default:
		return "transport_failure"
	}
}

// OutcomeOf maps an error returned by this package to its outcome. Errors of
// any other kind count as transport failures.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}

	var serviceErr *ServiceError

	if errors.As(err, &serviceErr) {
		return OutcomeServiceError
	}

	var protocolErr *ProtocolError

	if errors.As(err, &protocolErr) {
		return OutcomeProtocolMismatch
	}

	return OutcomeTransportFailure
}

// ServiceError is a non-200 answer of the remote service.
type ServiceError struct {
	StatusCode int

	Message string
	Body    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (%d): %s", e.StatusCode, e.Message)
}

// ProtocolError is a 200 answer whose payload does not match the declared
// contract, usually a wrong content type.
type ProtocolError struct {
	StatusCode  int
	ContentType string

	Message string
	Body    string
}

func (e *ProtocolError) Error() string {
	contentType := e.ContentType

	if contentType == "" {
		contentType = "none"
	}

	return fmt.Sprintf("unexpected response (%d, %s): %s", e.StatusCode, contentType, e.Message)
}

// TransportError covers network, timeout and local I/O failures. Written is
// the number of bytes already persisted when the failure happened.
type TransportError struct {
	Err error

	Written int64
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newServiceError(resp *http.Response) error {
	message, body := readDiagnostic(resp.Body)

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &ServiceError{
		StatusCode: resp.StatusCode,

		Message: message,
		Body:    body,
	}
}

func newProtocolError(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")
	message, body := readDiagnostic(resp.Body)

	if message == "" {
		message = "unexpected content type"
	}

	return &ProtocolError{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,

		Message: message,
		Body:    body,
	}
}

// readDiagnostic reads a bounded prefix of an error body and returns the best
// human readable message together with the truncated raw text.
func readDiagnostic(r io.Reader) (string, string) {
	data, _ := io.ReadAll(io.LimitReader(r, maxDiagnosticBytes))

	raw := truncate(strings.TrimSpace(string(data)), maxDiagnosticChars)

	if message := diagnosticMessage(data); message != "" {
		return message, raw
	}

	return raw, raw
}

func diagnosticMessage(data []byte) string {
	var payload map[string]any

	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}

	var message string

	for _, key := range []string{"message", "reason", "detail"} {
		if val, ok := payload[key].(string); ok && val != "" {
			message = val
			break
		}
	}

	var detail string

	switch val := payload["error"].(type) {
	case string:
		detail = val

	case map[string]any:
		if m, ok := val["message"].(string); ok {
			detail = m
		}
	}

	if message == "" {
		return detail
	}

	if detail != "" && detail != message {
		return message + ": " + detail
	}

	return message
}

func hasMediaType(header, expected string) bool {
	mediatype, _, err := mime.ParseMediaType(header)

	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return false
	}

	return strings.EqualFold(mediatype, expected)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n]) + "..."
}
