package client

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// decodeResponse applies the same classification as synthesis to JSON
// endpoints: non-200 is a service error, anything but a decodable JSON
// document is a protocol error.
func decodeResponse(resp *http.Response, v any) error {
	if resp.StatusCode != http.StatusOK {
		return newServiceError(resp)
	}

	contentType := resp.Header.Get("Content-Type")

	if !hasMediaType(contentType, "application/json") {
		return newProtocolError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return &TransportError{Err: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &ProtocolError{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,

			Message: "invalid response: " + err.Error(),
			Body:    truncate(strings.TrimSpace(string(data)), maxDiagnosticChars),
		}
	}

	return nil
}
