package client

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func audioResponse(body io.Reader) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"audio/mpeg"}},
		Body:       io.NopCloser(body),
	}
}

func TestPersistReadErrorKeepsPartialFile(t *testing.T) {
	for _, n := range []int{0, 1, 100, streamChunkSize, streamChunkSize*3 + 5} {
		data := bytes.Repeat([]byte{0x7f}, n)
		cause := errors.New("connection reset by peer")

		path := filepath.Join(t.TempDir(), "out.mp3")

		resp := audioResponse(io.MultiReader(bytes.NewReader(data), iotest.ErrReader(cause)))

		written, err := persist(resp, fileSink(path), nil)
		require.Equal(t, int64(n), written)
		require.ErrorIs(t, err, cause)
		require.Equal(t, OutcomeTransportFailure, OutcomeOf(err))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, data, content)
	}
}

type limitedWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()

	if len(p) > room {
		w.buf.Write(p[:room])
		return room, errors.New("no space left on device")
	}

	return w.buf.Write(p)
}

func TestPersistWriteError(t *testing.T) {
	w := &limitedWriter{limit: 10}

	resp := audioResponse(bytes.NewReader(bytes.Repeat([]byte{0x01}, 64)))

	written, err := persist(resp, writerSink(w), nil)
	require.Equal(t, int64(10), written)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, int64(10), transportErr.Written)
	require.EqualError(t, transportErr.Err, "no space left on device")
}

func TestPersistDoesNotOpenSinkOnError(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		contentType string
		outcome     Outcome
	}{
		{"service error", http.StatusInternalServerError, "audio/mpeg", OutcomeServiceError},
		{"not found", http.StatusNotFound, "text/plain", OutcomeServiceError},
		{"wrong type", http.StatusOK, "application/json", OutcomeProtocolMismatch},
		{"missing type", http.StatusOK, "", OutcomeProtocolMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tc.status,
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader(`{"message":"nope"}`)),
			}

			if tc.contentType != "" {
				resp.Header.Set("Content-Type", tc.contentType)
			}

			opened := false

			open := func() (io.WriteCloser, error) {
				opened = true
				return nil, errors.New("unexpected open")
			}

			written, err := persist(resp, open, nil)
			require.Zero(t, written)
			require.False(t, opened)
			require.Equal(t, tc.outcome, OutcomeOf(err))
			require.ErrorContains(t, err, "nope")
		})
	}
}

func TestDrainUnevenReads(t *testing.T) {
	data := []byte(strings.Repeat("0123456789", 1000))

	var buf bytes.Buffer
	var progress []int64

	written, err := drain(&buf, iotest.HalfReader(iotest.OneByteReader(bytes.NewReader(data))), func(n int64) {
		progress = append(progress, n)
	})

	require.NoError(t, err)
	require.Equal(t, int64(len(data)), written)
	require.Equal(t, data, buf.Bytes())
	require.Len(t, progress, len(data))
	require.Equal(t, int64(len(data)), progress[len(progress)-1])
}

func TestDiagnosticMessage(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"voice not found"}`, "voice not found"},
		{"reason", `{"error":true,"reason":"text must not be empty"}`, "text must not be empty"},
		{"message and error", `{"status":"error","message":"failed","error":"timeout"}`, "failed: timeout"},
		{"error only", `{"error":"bad voice"}`, "bad voice"},
		{"nested error", `{"error":{"message":"rate limited","type":"requests"}}`, "rate limited"},
		{"detail", `{"detail":"not authenticated"}`, "not authenticated"},
		{"unknown fields", `{"code":42}`, ""},
		{"array", `["a","b"]`, ""},
		{"text", `Internal Server Error`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, diagnosticMessage([]byte(tc.body)))
		})
	}
}

func TestReadDiagnosticFallsBackToRawText(t *testing.T) {
	message, raw := readDiagnostic(strings.NewReader(`{"code":42}`))
	require.Equal(t, `{"code":42}`, message)
	require.Equal(t, `{"code":42}`, raw)

	long := strings.Repeat("ä", 600)

	message, raw = readDiagnostic(strings.NewReader(long))
	require.Equal(t, strings.Repeat("ä", 500)+"...", message)
	require.Equal(t, message, raw)
}

func TestHasMediaType(t *testing.T) {
	testCases := []struct {
		header string
		want   bool
	}{
		{"audio/mpeg", true},
		{"AUDIO/MPEG", true},
		{"audio/mpeg; charset=utf-8", true},
		{"audio/mpeg;", true},
		{" audio/mpeg ", true},
		{"audio/mpeg3", false},
		{"", false},
		{"audio", false},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, hasMediaType(tc.header, "audio/mpeg"), tc.header)
	}
}
